package exposition

import (
	"bytes"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ContentType is the media type of the text written by Encode.
var ContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

// Encode writes families in text format, in the given order. Families
// without metrics are skipped, so an empty state encodes to nothing.
func Encode(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if mf == nil || len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Render gathers g and encodes the result. Gathering errors are returned
// together with whatever text could be produced.
func Render(g prometheus.Gatherer) ([]byte, error) {
	families, gatherErr := g.Gather()

	var buf bytes.Buffer
	if err := Encode(&buf, families); err != nil {
		return buf.Bytes(), err
	}
	return buf.Bytes(), gatherErr
}
