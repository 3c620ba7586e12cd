package jsonutil_test

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/qasymphony/qtest-ci/internal/jsonutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseTimestamp", func() {
	var (
		codec *jsonutil.Codec
		logs  *observer.ObservedLogs
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		codec = jsonutil.New(zap.New(core).Sugar())
	})

	It("reads positive integers as epoch milliseconds", func() {
		parsed := codec.ParseTimestamp("1650000000000")
		Expect(parsed).NotTo(BeNil())
		Expect(parsed.Equal(time.UnixMilli(1650000000000))).To(BeTrue())
		Expect(logs.Len()).To(Equal(0))
	})

	It("does not read zero or negative integers as epoch milliseconds", func() {
		Expect(codec.ParseTimestamp("0")).To(BeNil())
		Expect(codec.ParseTimestamp("-5")).To(BeNil())
	})

	DescribeTable("reads the known layouts",
		func(text string, expected time.Time) {
			parsed := codec.ParseTimestamp(text)
			Expect(parsed).NotTo(BeNil())
			Expect(parsed.Equal(expected)).To(BeTrue(), "got %s", parsed)
		},
		Entry("milliseconds, Z", "2022-04-15T10:00:00.123Z",
			time.Date(2022, 4, 15, 10, 0, 0, 123000000, time.UTC)),
		Entry("microseconds, Z", "2022-04-15T10:00:00.123456Z",
			time.Date(2022, 4, 15, 10, 0, 0, 123456000, time.UTC)),
		Entry("nanoseconds, Z", "2022-04-15T10:00:00.123456789Z",
			time.Date(2022, 4, 15, 10, 0, 0, 123456789, time.UTC)),
		Entry("four digits", "2022-04-15T10:00:00.1234Z",
			time.Date(2022, 4, 15, 10, 0, 0, 123400000, time.UTC)),
		Entry("seven digits", "2022-04-15T10:00:00.1234567Z",
			time.Date(2022, 4, 15, 10, 0, 0, 123456700, time.UTC)),
		Entry("one digit", "2022-04-15T10:00:00.5Z",
			time.Date(2022, 4, 15, 10, 0, 0, 500000000, time.UTC)),
		Entry("no fraction, Z", "2022-04-15T10:00:00Z",
			time.Date(2022, 4, 15, 10, 0, 0, 0, time.UTC)),
		Entry("offset with colon", "2022-04-15T17:00:00.000+07:00",
			time.Date(2022, 4, 15, 10, 0, 0, 0, time.UTC)),
		Entry("offset without colon", "2022-04-15T17:00:00.000+0700",
			time.Date(2022, 4, 15, 10, 0, 0, 0, time.UTC)),
		Entry("hour-only offset", "2022-04-15T05:00:00-05",
			time.Date(2022, 4, 15, 10, 0, 0, 0, time.UTC)),
		Entry("no zone", "2022-04-15T10:00:00",
			time.Date(2022, 4, 15, 10, 0, 0, 0, time.UTC)),
	)

	It("returns nil for garbage and warns once", func() {
		Expect(codec.ParseTimestamp("not-a-date")).To(BeNil())
		Expect(logs.FilterLevelExact(zapcore.WarnLevel).Len()).To(Equal(1))
	})

	It("returns nil for empty input without logging", func() {
		Expect(codec.ParseTimestamp("")).To(BeNil())
		Expect(logs.Len()).To(Equal(0))
	})
})

var _ = Describe("Timestamp", func() {
	type envelope struct {
		Start jsonutil.Timestamp `json:"start"`
	}

	It("serializes in the date format", func() {
		ts := jsonutil.Timestamp{Time: time.Date(2022, 4, 15, 10, 0, 0, 123000000, time.UTC)}
		buf, err := json.Marshal(envelope{Start: ts})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf)).To(Equal(`{"start":"2022-04-15T10:00:00.123+0000"}`))
	})

	It("serializes the zero value as null", func() {
		buf, err := json.Marshal(envelope{})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(buf)).To(Equal(`{"start":null}`))
	})

	It("deserializes leniently", func() {
		for _, raw := range []string{
			`{"start":"2022-04-15T10:00:00.123+0000"}`,
			`{"start":"2022-04-15T10:00:00.123Z"}`,
			`{"start":1650016800123}`,
			`{"start":"1650016800123"}`,
		} {
			var e envelope
			Expect(json.Unmarshal([]byte(raw), &e)).To(Succeed(), raw)
			Expect(e.Start.Equal(time.Date(2022, 4, 15, 10, 0, 0, 123000000, time.UTC))).To(BeTrue(), raw)
		}
	})

	It("rejects unparseable timestamps", func() {
		var e envelope
		Expect(json.Unmarshal([]byte(`{"start":"yesterday"}`), &e)).NotTo(Succeed())
	})

	It("formats the current date", func() {
		parsed := jsonutil.New(nil).ParseTimestamp(jsonutil.CurrentDateString())
		Expect(parsed).NotTo(BeNil())
		Expect(time.Since(*parsed)).To(BeNumerically("<", time.Minute))
	})
})
