// Package exposition renders aggregated request durations in the
// Prometheus text exposition format.
//
// Collector adapts an aggregate.Aggregator to a prometheus.Collector by
// emitting one constant histogram or summary per label key. Gathering it
// through a prometheus.Registry yields metric families with sorted labels
// and buckets; Encode writes those families as text. Label values are
// escaped by the encoder, so paths containing quotes or backslashes round
// trip through any standard exposition parser.
package exposition
