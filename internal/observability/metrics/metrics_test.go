package metrics

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("wallet_type", "ALMSGIVING"),
		attribute.String("muzakki_name", "someone"),
		attribute.String("direction", "INCOMING"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "muzakki_name" {
			t.Fatalf("expected muzakki_name to be dropped")
		}
	}
}
