package dart

import (
	"encoding/json"
	"net/url"
)

type tabularResp struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	List    []map[string]any `json:"list"`
}

// 단일회사 전체 재무제표
// https://opendart.fss.or.kr/guide/detail.do?apiGrpCd=DS003&apiId=2019020
func (c *DartClient) FinstateAll(corp, bsnsYear, reprtCode, fsDiv string) ([]map[string]any, error) {
	corpCode, err := c.resolveCorpCode(corp)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("crtfc_key", c.key)
	q.Set("corp_code", corpCode)
	q.Set("bsns_year", bsnsYear)
	q.Set("reprt_code", reprtCode)
	q.Set("fs_div", fsDiv) // CFS: 연결, OFS: 개별

	return c.getRows("/fnlttSinglAcntAll.json", q)
}

// getRows runs a DS002/DS003-style query and returns the row list. Status 013
// (no data) yields zero rows without an error.
func (c *DartClient) getRows(path string, q url.Values) ([]map[string]any, error) {
	u, _ := url.Parse(baseURL + path)
	u.RawQuery = q.Encode()

	resp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out tabularResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if out.Status == "013" {
		return nil, nil
	}

	if out.Status != "000" {
		return nil, &APIError{Status: out.Status, Message: out.Message}
	}

	return out.List, nil
}
