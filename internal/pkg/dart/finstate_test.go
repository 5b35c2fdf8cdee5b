package dart_test

import (
	"errors"
	"fmt"

	"dartapi/internal/pkg/dart"
	"dartapi/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Periodic report lookups", func() {
	var client *dart.DartClient
	var apiKey = "test-dart-api-key"

	BeforeEach(func() {
		testhelpers.Activate()

		client = dart.New(apiKey)
		client.UseDefaultClient()
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	Describe("FinstateAll", func() {
		It("returns statement rows as generic maps", func() {
			testhelpers.New("https://opendart.fss.or.kr").
				Get(fmt.Sprintf("/api/fnlttSinglAcntAll.json?crtfc_key=%s&corp_code=00126380&bsns_year=2022&reprt_code=11011&fs_div=CFS", apiKey)).
				Reply(200).
				BodyString(`{
					"status":"000","message":"정상",
					"list":[
						{"rcept_no":"20230307000542","sj_nm":"재무상태표","account_nm":"자산총계","thstrm_amount":"448424507000000"},
						{"rcept_no":"20230307000542","sj_nm":"재무상태표","account_nm":"부채총계","thstrm_amount":"93674903000000"}
					]
				}`)

			rows, err := client.FinstateAll("00126380", "2022", "11011", "CFS")
			Expect(err).NotTo(HaveOccurred())
			Expect(testhelpers.IsDone()).To(BeTrue())

			Expect(rows).To(HaveLen(2))
			Expect(rows[0]).To(HaveKeyWithValue("account_nm", "자산총계"))
			Expect(rows[1]).To(HaveKeyWithValue("thstrm_amount", "93674903000000"))
		})

		It("treats status 013 as zero rows", func() {
			testhelpers.New("https://opendart.fss.or.kr").
				Get(fmt.Sprintf("/api/fnlttSinglAcntAll.json?crtfc_key=%s&corp_code=00126380&bsns_year=1999&reprt_code=11011&fs_div=CFS", apiKey)).
				Reply(200).
				BodyString(`{"status":"013","message":"조회된 데이타가 없습니다."}`)

			rows, err := client.FinstateAll("00126380", "1999", "11011", "CFS")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("surfaces non-000 statuses as APIError", func() {
			testhelpers.New("https://opendart.fss.or.kr").
				Get(fmt.Sprintf("/api/fnlttSinglAcntAll.json?crtfc_key=%s&corp_code=00126380&bsns_year=2022&reprt_code=11011&fs_div=CFS", apiKey)).
				Reply(200).
				BodyString(`{"status":"020","message":"요청 제한을 초과하였습니다."}`)

			_, err := client.FinstateAll("00126380", "2022", "11011", "CFS")

			var apiErr *dart.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Status).To(Equal("020"))
		})
	})

	Describe("Report", func() {
		It("dispatches the dividend keyword to alotMatter", func() {
			testhelpers.New("https://opendart.fss.or.kr").
				Get(fmt.Sprintf("/api/alotMatter.json?crtfc_key=%s&corp_code=00126380&bsns_year=2022&reprt_code=11011", apiKey)).
				Reply(200).
				BodyString(`{
					"status":"000","message":"정상",
					"list":[{"se":"주당 현금배당금(원)","stock_knd":"보통주","thstrm":"1444","frmtrm":"1444","lwfr":"2994"}]
				}`)

			rows, err := client.Report("00126380", "배당", "2022", dart.BUSINESS_REPORT)
			Expect(err).NotTo(HaveOccurred())
			Expect(testhelpers.IsDone()).To(BeTrue())

			Expect(rows).To(HaveLen(1))
			Expect(rows[0]).To(HaveKeyWithValue("se", "주당 현금배당금(원)"))
		})

		It("sends the requested report-type code", func() {
			testhelpers.New("https://opendart.fss.or.kr").
				Get(fmt.Sprintf("/api/alotMatter.json?crtfc_key=%s&corp_code=00126380&bsns_year=2022&reprt_code=11012", apiKey)).
				Reply(200).
				BodyString(`{"status":"013","message":"조회된 데이타가 없습니다."}`)

			_, err := client.Report("00126380", "배당", "2022", dart.HALF_YEAR)
			Expect(err).NotTo(HaveOccurred())
			Expect(testhelpers.IsDone()).To(BeTrue())
		})

		It("rejects an unknown keyword without calling upstream", func() {
			_, err := client.Report("00126380", "우주여행", "2022", dart.BUSINESS_REPORT)

			var paramErr *dart.ParamError
			Expect(errors.As(err, &paramErr)).To(BeTrue())
			Expect(paramErr.Error()).To(ContainSubstring("우주여행"))
		})
	})
})
