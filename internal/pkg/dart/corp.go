package dart

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CorpInfo is one entry of the corpCode.xml directory.
type CorpInfo struct {
	CorpCode    string `xml:"corp_code" json:"corp_code"`
	CorpName    string `xml:"corp_name" json:"corp_name"`
	CorpEngName string `xml:"corp_eng_name" json:"corp_eng_name"`
	StockCode   string `xml:"stock_code" json:"stock_code"`
	ModifyDate  string `xml:"modify_date" json:"modify_date"`
}

type corpCodeXML struct {
	XMLName xml.Name   `xml:"result"`
	Corps   []CorpInfo `xml:"list"`
}

// 고유번호 전체 목록 (zip으로 감싼 XML)
// https://opendart.fss.or.kr/guide/detail.do?apiGrpCd=DS001&apiId=2019018
func (c *DartClient) fetchCorps() error {
	u, _ := url.Parse(baseURL + "/corpCode.xml")
	q := u.Query()
	q.Set("crtfc_key", c.key)
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("DART error %d: %s", resp.StatusCode, string(buf))
	}

	raw, err := unzipAll(buf)
	if err != nil {
		return err
	}

	var file corpCodeXML
	if err := xml.NewDecoder(bytes.NewReader(raw)).Decode(&file); err != nil {
		return err
	}

	byStock := make(map[string]string)
	for i := range file.Corps {
		ci := &file.Corps[i]
		ci.CorpCode = strings.TrimSpace(ci.CorpCode)
		ci.CorpName = strings.TrimSpace(ci.CorpName)
		ci.CorpEngName = strings.TrimSpace(ci.CorpEngName)
		ci.StockCode = strings.TrimSpace(ci.StockCode)
		ci.ModifyDate = strings.TrimSpace(ci.ModifyDate)

		if ci.StockCode != "" {
			byStock[ci.StockCode] = ci.CorpCode
		}
	}

	c.corps = file.Corps
	c.byStock = byStock
	return nil
}

// loadCorps downloads the corp directory once per client lifetime. Overlapping
// requests share the same download.
func (c *DartClient) loadCorps() error {
	c.corpOnce.Do(func() {
		c.corpErr = c.fetchCorps()
	})
	return c.corpErr
}

// resolveCorpCode accepts an 8-digit corp code as-is and resolves a 6-digit
// stock code through the directory. Anything else is a bad parameter.
func (c *DartClient) resolveCorpCode(corp string) (string, error) {
	if len(corp) == 8 && isDigits(corp) {
		return corp, nil
	}

	if err := c.loadCorps(); err != nil {
		return "", err
	}

	if code, ok := c.byStock[corp]; ok {
		return code, nil
	}

	return "", &ParamError{Msg: fmt.Sprintf("no company found for corp '%s'", corp)}
}

// 기업개황 조회
// https://opendart.fss.or.kr/guide/detail.do?apiGrpCd=DS001&apiId=2019002
func (c *DartClient) Company(corp string) (map[string]any, error) {
	corpCode, err := c.resolveCorpCode(corp)
	if err != nil {
		return nil, err
	}

	u, _ := url.Parse(baseURL + "/company.json")
	q := u.Query()
	q.Set("crtfc_key", c.key)
	q.Set("corp_code", corpCode)
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	status, _ := out["status"].(string)
	if status != "000" {
		message, _ := out["message"].(string)
		return nil, &APIError{Status: status, Message: message}
	}

	// the profile itself is passed through untyped, minus the envelope
	delete(out, "status")
	delete(out, "message")
	return out, nil
}

// CompanyByName returns the profile of every company whose name contains the
// given fragment. An empty result is not an error.
func (c *DartClient) CompanyByName(fragment string) ([]map[string]any, error) {
	if err := c.loadCorps(); err != nil {
		return nil, err
	}

	var profiles []map[string]any
	for _, ci := range c.corps {
		if !strings.Contains(ci.CorpName, fragment) {
			continue
		}

		profile, err := c.Company(ci.CorpCode)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}
