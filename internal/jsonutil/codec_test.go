package jsonutil_test

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/qasymphony/qtest-ci/internal/errors"
	"github.com/qasymphony/qtest-ci/internal/jsonutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type testRun struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Status string            `json:"status"`
	Tags   []string          `json:"tags,omitempty"`
	Props  map[string]string `json:"properties,omitempty"`
}

var _ = Describe("Codec", func() {
	var (
		codec *jsonutil.Codec
		logs  *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		codec = jsonutil.New(zap.New(core).Sugar())
	})

	warnings := func() int {
		return logs.FilterLevelExact(zapcore.WarnLevel).Len()
	}

	Describe("ParseTree", func() {
		It("returns no node for empty and blank input", func() {
			for _, text := range []string{"", "   ", "\n\t"} {
				node, err := codec.ParseTree(text)
				Expect(err).NotTo(HaveOccurred())
				Expect(node).To(BeNil())
			}
		})

		It("parses objects", func() {
			node, err := codec.ParseTree(`{"id": 7, "name": "login works"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(node.IsObject()).To(BeTrue())
			Expect(jsonutil.GetLong(node, "id")).To(Equal(int64(7)))
		})

		It("fails on malformed JSON", func() {
			node, err := codec.ParseTree(`{"id": `)
			Expect(err).To(HaveOccurred())
			Expect(node).To(BeNil())

			_, ok := errors.AsInputError(err)
			Expect(ok).To(BeTrue())
		})

		It("fails on trailing data", func() {
			_, err := codec.ParseTree(`{} {}`)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ReadTree", func() {
		It("swallows parse errors into a warning", func() {
			Expect(codec.ReadTree(`not json`)).To(BeNil())
			Expect(warnings()).To(Equal(1))
		})

		It("does not warn about blank input", func() {
			Expect(codec.ReadTree("")).To(BeNil())
			Expect(warnings()).To(Equal(0))
		})
	})

	Describe("Decode & FromJSON", func() {
		It("decodes into the requested shape, ignoring unknown fields", func() {
			run, err := jsonutil.Decode[testRun](codec, `{"id": 3, "name": "checkout", "unknown": true}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(run).To(Equal(&testRun{ID: 3, Name: "checkout"}))
		})

		It("returns nil for blank input", func() {
			Expect(jsonutil.FromJSON[testRun](codec, "")).To(BeNil())
			Expect(warnings()).To(Equal(0))
		})

		It("returns nil for a JSON null", func() {
			run, err := jsonutil.Decode[testRun](codec, " null\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(run).To(BeNil())

			Expect(jsonutil.FromJSON[testRun](codec, "null")).To(BeNil())
			Expect(warnings()).To(Equal(0))
		})

		It("logs and returns nil on malformed input", func() {
			Expect(jsonutil.FromJSON[testRun](codec, `{"id":`)).To(BeNil())
			Expect(warnings()).To(Equal(1))
		})

		It("logs and returns nil on a shape mismatch", func() {
			Expect(jsonutil.FromJSON[testRun](codec, `[1, 2, 3]`)).To(BeNil())
			Expect(warnings()).To(Equal(1))

			_, err := jsonutil.Decode[testRun](codec, `{"id": "seven"}`)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ToJSON", func() {
		It("serializes values", func() {
			Expect(codec.ToJSON(testRun{ID: 1, Name: "a"})).To(Equal(`{"id":1,"name":"a","status":""}`))
		})

		It("returns an empty string for nil", func() {
			var run *testRun

			Expect(codec.ToJSON(nil)).To(Equal(""))
			Expect(codec.ToJSON(run)).To(Equal(""))
			Expect(warnings()).To(Equal(0))
		})

		It("returns an empty string and warns when serialization fails", func() {
			Expect(codec.ToJSON(map[string]any{"callback": func() {}})).To(Equal(""))
			Expect(warnings()).To(Equal(1))
		})

		It("round-trips record-shaped values", func() {
			original := testRun{
				ID:     1650000000000,
				Name:   "Checkout › pays with \"card\"",
				Status: "PASS",
				Tags:   []string{"smoke", "ui"},
				Props:  map[string]string{"browser": "firefox"},
			}

			text := codec.ToJSON(original)
			Expect(text).NotTo(BeEmpty())

			node, err := codec.ParseTree(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(jsonutil.GetLong(node, "id")).To(Equal(original.ID))
			Expect(jsonutil.GetText(node, "name")).To(Equal(original.Name))
			Expect(jsonutil.GetText(node, "status")).To(Equal(original.Status))
			Expect(node.Get("tags").Len()).To(Equal(2))
			Expect(node.Get("tags").Index(1).Text()).To(Equal("ui"))
			Expect(jsonutil.GetText(node.Get("properties"), "browser")).To(Equal("firefox"))

			decoded, err := jsonutil.Decode[testRun](codec, text)
			Expect(err).NotTo(HaveOccurred())
			Expect(*decoded).To(Equal(original))
		})
	})

	Describe("NewNode & ToNode", func() {
		It("builds object nodes", func() {
			node := codec.NewNode().Set("id", 4).Set("name", "x")
			Expect(codec.ToJSON(node)).To(Equal(`{"id":4,"name":"x"}`))
		})

		It("converts structs into object nodes", func() {
			node := codec.ToNode(testRun{ID: 9, Name: "n"})
			Expect(jsonutil.GetInt(node, "id")).To(Equal(9))
			Expect(jsonutil.GetText(node, "name")).To(Equal("n"))
		})

		It("falls back to an empty object", func() {
			Expect(codec.ToNode(nil).IsObject()).To(BeTrue())
			Expect(codec.ToNode(nil).Len()).To(Equal(0))
			Expect(codec.ToNode("just a string").Len()).To(Equal(0))
			Expect(codec.ToNode([]int{1, 2}).IsObject()).To(BeTrue())
		})
	})
})
