package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dartapi/internal/pkg/dart"

	"github.com/gin-gonic/gin"
)

type DisclosureController struct {
	Dart *dart.DartClient
}

// Root greets API consumers.
func (dc *DisclosureController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "DART 공시 게이트웨이에 오신 것을 환영합니다!"})
}

// GetList returns the disclosure list for the given filters, in provider
// order. Dates must be YYYY-MM-DD; start/end ordering is deliberately not
// checked, DART's own behavior is passed through.
func (dc *DisclosureController) GetList(c *gin.Context) {
	opts := dart.ListOptions{
		Corp:       c.Query("corp"),
		Kind:       c.Query("kind"),
		KindDetail: c.Query("kind_detail"),
		FinalOnly:  true,
	}

	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"start", &opts.Start},
		{"end", &opts.End},
	} {
		v := c.Query(p.name)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			writeError(c, invalidInput(fmt.Sprintf("invalid %s date '%s': expected YYYY-MM-DD", p.name, v)))
			return
		}
		*p.dst = v
	}

	if len([]rune(opts.Kind)) > 1 {
		writeError(c, invalidInput("kind must be a single character"))
		return
	}

	if v := c.Query("final"); v != "" {
		final, err := strconv.ParseBool(v)
		if err != nil {
			writeError(c, invalidInput(fmt.Sprintf("invalid final flag '%s'", v)))
			return
		}
		opts.FinalOnly = final
	}

	filings, err := dc.Dart.List(opts)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	if filings == nil {
		filings = []dart.Filing{}
	}
	c.JSON(http.StatusOK, filings)
}

// GetCompanyByName searches company profiles by name fragment. No match is a
// success with a message, not an error.
func (dc *DisclosureController) GetCompanyByName(c *gin.Context) {
	name := c.Param("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	profiles, err := dc.Dart.CompanyByName(name)
	if err != nil {
		// company lookups treat every failure as a client error
		writeError(c, invalidInput(err.Error()))
		return
	}

	if len(profiles) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("No companies found with name containing '%s'", name),
		})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetCompany returns a single company profile by issuer code.
func (dc *DisclosureController) GetCompany(c *gin.Context) {
	profile, err := dc.Dart.Company(c.Param("company_code"))
	if err != nil {
		writeError(c, invalidInput(err.Error()))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetDocument returns the original filing document as an XML attachment.
// Bare ampersands in the upstream payload are escaped, then the result must
// still tokenize as XML before it goes out.
func (dc *DisclosureController) GetDocument(c *gin.Context) {
	rcpNo := c.Param("rcp_no")

	doc, err := dc.Dart.Document(rcpNo)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	fixed := FixBareAmpersands(doc)
	if err := CheckWellFormedXML(fixed); err != nil {
		writeError(c, upstream(fmt.Sprintf("document %s is not well-formed XML: %v", rcpNo, err)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=document_%s.xml", rcpNo))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(fixed))
}

// GetSubDocuments lists the sub-documents of a filing as shown in the DART
// viewer.
func (dc *DisclosureController) GetSubDocuments(c *gin.Context) {
	rcpNo := c.Param("rcp_no")

	subs, err := dc.Dart.SubDocuments(rcpNo)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	if len(subs) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("No sub-documents found for receipt '%s'", rcpNo),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subdocs": subs})
}

// GetFinstatesAll returns the full financial statements of one company for a
// business year.
func (dc *DisclosureController) GetFinstatesAll(c *gin.Context) {
	corp := c.Query("corp")
	year := c.Query("bsns_year")
	if corp == "" || year == "" {
		writeError(c, invalidInput("corp and bsns_year are required"))
		return
	}

	reprtCode := c.DefaultQuery("reprt_code", string(dart.BUSINESS_REPORT))
	fsDiv := c.DefaultQuery("fs_div", "CFS")

	rows, err := dc.Dart.FinstateAll(corp, year, reprtCode, fsDiv)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("No financial statements found for corp '%s' in %s", corp, year),
		})
		return
	}

	c.JSON(http.StatusOK, SanitizeRows(rows))
}

// GetDividend returns the dividend section of a periodic report, echoing the
// resolved query parameters next to the rows.
func (dc *DisclosureController) GetDividend(c *gin.Context) {
	corp := c.Param("corp")

	year := c.Query("year")
	if year == "" {
		writeError(c, invalidInput("year is required"))
		return
	}

	reprtCode := dart.BUSINESS_REPORT
	if q := c.Query("quarter"); q != "" {
		switch q {
		case "1":
			reprtCode = dart.FIRST_QUARTER
		case "2":
			reprtCode = dart.HALF_YEAR
		case "3":
			reprtCode = dart.THIRD_QUARTER
		case "4":
			reprtCode = dart.BUSINESS_REPORT
		default:
			writeError(c, invalidInput(fmt.Sprintf("invalid quarter '%s': expected 1-4", q)))
			return
		}
	}

	rows, err := dc.Dart.Report(corp, "배당", year, reprtCode)
	if err != nil {
		writeError(c, classify(err))
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("No dividend data found for corp '%s' in %s", corp, year),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"corp":       corp,
		"bsns_year":  year,
		"reprt_code": string(reprtCode),
		"data":       SanitizeRows(rows),
	})
}
