package controllers_test

import (
	"encoding/json"
	"math"

	"dartapi/internal/controllers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitizeRows", func() {
	It("replaces infinities and NaN with nil", func() {
		rows := []map[string]any{
			{
				"pos_inf": math.Inf(1),
				"neg_inf": math.Inf(-1),
				"nan":     math.NaN(),
				"number":  1.5,
				"text":    "그대로",
			},
		}

		sanitized := controllers.SanitizeRows(rows)

		Expect(sanitized[0]["pos_inf"]).To(BeNil())
		Expect(sanitized[0]["neg_inf"]).To(BeNil())
		Expect(sanitized[0]["nan"]).To(BeNil())
		Expect(sanitized[0]["number"]).To(Equal(1.5))
		Expect(sanitized[0]["text"]).To(Equal("그대로"))
	})

	It("walks nested maps and slices", func() {
		rows := []map[string]any{
			{
				"nested": map[string]any{"inf": math.Inf(1), "ok": "yes"},
				"items":  []any{math.NaN(), 2.0},
			},
		}

		sanitized := controllers.SanitizeRows(rows)

		nested := sanitized[0]["nested"].(map[string]any)
		Expect(nested["inf"]).To(BeNil())
		Expect(nested["ok"]).To(Equal("yes"))

		items := sanitized[0]["items"].([]any)
		Expect(items[0]).To(BeNil())
		Expect(items[1]).To(Equal(2.0))
	})

	It("makes any row collection JSON-encodable", func() {
		rows := []map[string]any{
			{"ratio": math.Inf(1), "growth": math.NaN()},
		}

		out, err := json.Marshal(controllers.SanitizeRows(rows))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(MatchJSON(`[{"ratio": null, "growth": null}]`))
	})
})
