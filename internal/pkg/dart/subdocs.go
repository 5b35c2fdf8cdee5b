package dart

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

const viewerBaseURL = "https://dart.fss.or.kr"

// SubDoc is one entry of the document tree shown in the DART viewer.
type SubDoc struct {
	RceptNo string `json:"rcept_no"`
	DcmNo   string `json:"dcm_no"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// The viewer builds its document tree in an inline script: each node gets a
// text assignment followed by a viewDoc('rcpNo','dcmNo',...) click handler.
var subDocPattern = regexp.MustCompile(`text\s*[:=]\s*"([^"]*)"|viewDoc\('(\d+)'\s*,\s*'(\d+)'`)

// SubDocuments scrapes the viewer page of a filing and returns its
// sub-documents in page order.
func (c *DartClient) SubDocuments(rceptNo string) ([]SubDoc, error) {
	u := fmt.Sprintf("%s/dsaf001/main.do?rcpNo=%s", viewerBaseURL, rceptNo)

	resp, err := c.client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DART viewer error %d for rcept_no %s", resp.StatusCode, rceptNo)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var subs []SubDoc
	title := ""
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		for _, m := range subDocPattern.FindAllStringSubmatch(s.Text(), -1) {
			if m[2] == "" {
				title = m[1]
				continue
			}

			subs = append(subs, SubDoc{
				RceptNo: m[2],
				DcmNo:   m[3],
				Title:   title,
				URL:     fmt.Sprintf("%s/report/viewer.do?rcpNo=%s&dcmNo=%s", viewerBaseURL, m[2], m[3]),
			})
			title = ""
		}
	})

	return subs, nil
}
