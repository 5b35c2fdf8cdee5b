package dart

import (
	"fmt"
	"net/url"
)

type ReportType string

const FIRST_QUARTER = ReportType("11013")   // 1분기
const HALF_YEAR = ReportType("11012")       // 반기
const THIRD_QUARTER = ReportType("11014")   // 3분기
const BUSINESS_REPORT = ReportType("11011") // 사업보고서

// 사업보고서 주요정보 (DS002) — keyword to API name.
// https://opendart.fss.or.kr/guide/main.do?apiGrpCd=DS002
var reportAPIs = map[string]string{
	"증자":   "irdsSttus",
	"배당":   "alotMatter",
	"자기주식": "tesstkAcqsDspsSttus",
	"최대주주": "hyslrSttus",
	"임원":   "exctvSttus",
	"직원":   "empSttus",
	"소액주주": "mrhlSttus",
}

// Report runs the keyword-selected periodic-report lookup for one business
// year. Rows come back untyped; 013 means no rows.
func (c *DartClient) Report(corp, keyword, bsnsYear string, reprtCode ReportType) ([]map[string]any, error) {
	api, ok := reportAPIs[keyword]
	if !ok {
		return nil, &ParamError{Msg: fmt.Sprintf("unknown report keyword '%s'", keyword)}
	}

	corpCode, err := c.resolveCorpCode(corp)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("crtfc_key", c.key)
	q.Set("corp_code", corpCode)
	q.Set("bsns_year", bsnsYear)
	q.Set("reprt_code", string(reprtCode))

	return c.getRows("/"+api+".json", q)
}
