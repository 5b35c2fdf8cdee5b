package dart

import (
	"archive/zip"
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const baseURL = "https://opendart.fss.or.kr/api"

// 한 페이지에 최대 100건
const listPageSize = 100

// DartClient talks to the DART OpenAPI. A single instance is shared by all
// requests; it holds no mutable state beyond the lazily loaded corp directory.
type DartClient struct {
	key    string
	client *http.Client

	corpOnce sync.Once
	corpErr  error
	corps    []CorpInfo
	byStock  map[string]string
}

func New(apiKey string) *DartClient {
	return &DartClient{
		key: apiKey,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					// DART는 TLS1.2 호환이 확실 — TLS1.2로 고정해서 협상 단순화
					MinVersion: tls.VersionTLS12,
					MaxVersion: tls.VersionTLS12,

					// SNI를 명시 (보통 자동이지만, 명시로 문제 회피)
					ServerName: "opendart.fss.or.kr",

					// 일부 구형 서버 대비 호환 암호군 지정 (필요 시)
					CipherSuites: []uint16{
						tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
						tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
						tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
						tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
					},
				},
			},
			Timeout: 20 * time.Second,
		},
	}
}

// UseDefaultClient routes requests through http.DefaultClient so tests can
// install a mock transport.
func (c *DartClient) UseDefaultClient() {
	c.client = http.DefaultClient
}

// Filing is one row of the disclosure list (공시 목록).
type Filing struct {
	CorpCls   string `json:"corp_cls"`
	CorpCode  string `json:"corp_code"`
	CorpName  string `json:"corp_name"`
	FlrNm     string `json:"flr_nm"`
	RceptDt   string `json:"rcept_dt"`
	RceptNo   string `json:"rcept_no"`
	ReportNm  string `json:"report_nm"`
	Rm        string `json:"rm"`
	StockCode string `json:"stock_code,omitempty"`
}

type listResp struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	PageNo    int      `json:"page_no"`
	PageCnt   int      `json:"page_count"`
	Total     int      `json:"total_count"`
	TotalPage int      `json:"total_page"`
	List      []Filing `json:"list"`
}

// ListOptions are the supported filters of the disclosure list query.
// Dates come in as YYYY-MM-DD; the wire format is YYYYMMDD.
type ListOptions struct {
	Corp       string // 8자리 기업코드 또는 6자리 종목코드
	Start      string
	End        string
	Kind       string // pblntf_ty, 공시 유형 한 글자
	KindDetail string // pblntf_detail_ty
	FinalOnly  bool   // last_reprt_at, 최종보고서만
}

// List fetches every page of the disclosure list matching opts, in the order
// DART returns them.
func (c *DartClient) List(opts ListOptions) ([]Filing, error) {
	corpCode := ""
	if opts.Corp != "" {
		code, err := c.resolveCorpCode(opts.Corp)
		if err != nil {
			return nil, err
		}
		corpCode = code
	}

	page := 1
	res, err := c.getDisclosureList(corpCode, opts, page, listPageSize)
	if err != nil {
		return nil, err
	}

	all := res.List
	for page < res.TotalPage {
		page++
		next, err := c.getDisclosureList(corpCode, opts, page, listPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, next.List...)
	}

	return all, nil
}

// 공시 목록 조회
// https://opendart.fss.or.kr/guide/detail.do?apiGrpCd=DS001&apiId=2019001
func (c *DartClient) getDisclosureList(corpCode string, opts ListOptions, pageNo, pageCount int) (*listResp, error) {
	u, _ := url.Parse(baseURL + "/list.json")
	q := u.Query()
	q.Set("crtfc_key", c.key)

	if corpCode != "" {
		q.Set("corp_code", corpCode) // 8자리 기업코드(예: 삼성전자 00126380)
	}
	if opts.Start != "" {
		q.Set("bgn_de", wireDate(opts.Start)) // YYYYMMDD, begin date
	}
	if opts.End != "" {
		q.Set("end_de", wireDate(opts.End)) // YYYYMMDD, end date
	}
	if opts.Kind != "" {
		q.Set("pblntf_ty", opts.Kind)
	}
	if opts.KindDetail != "" {
		q.Set("pblntf_detail_ty", opts.KindDetail)
	}

	if opts.FinalOnly {
		q.Set("last_reprt_at", "Y")
	} else {
		q.Set("last_reprt_at", "N")
	}

	q.Set("page_no", fmt.Sprint(pageNo))
	q.Set("page_count", fmt.Sprint(pageCount))
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out listResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	// 013: 조회된 데이터가 없습니다 — empty result, not a failure
	if out.Status == "013" {
		return &listResp{Status: out.Status, Message: out.Message}, nil
	}

	if out.Status != "000" { // 000: 정상
		return nil, &APIError{Status: out.Status, Message: out.Message}
	}

	return &out, nil
}

// 공시서류원본파일
// https://opendart.fss.or.kr/guide/detail.do?apiGrpCd=DS001&apiId=2019003
func (c *DartClient) Document(rceptNo string) (string, error) {
	u, _ := url.Parse(baseURL + "/document.xml")
	q := u.Query()
	q.Set("crtfc_key", c.key)
	q.Set("rcept_no", rceptNo) // 접수번호

	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("DART error %d: %s", resp.StatusCode, string(buf))
	}

	// an error response comes back as a small XML body, not a zip archive
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "application/xml;charset=UTF-8" {
		if strings.Contains(string(buf), "<status>014</status>") {
			return "", ErrDocumentNotFound
		}
		return string(buf), nil
	}

	doc, err := unzipAll(buf)
	if err != nil {
		return "", err
	}

	return string(doc), nil
}

// unzipAll concatenates every file in the archive, in archive order.
func unzipAll(buf []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, err
	}

	outBuf := new(bytes.Buffer)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}

		_, err = io.Copy(outBuf, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}

	return outBuf.Bytes(), nil
}

func wireDate(d string) string {
	return strings.ReplaceAll(d, "-", "")
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
