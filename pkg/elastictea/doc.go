// Package elastictea connects brew pipelines to Elasticsearch.
//
// NewFill builds a source stage that pages through an index with from/size
// windows and submits every non-empty page as one batch. NewPour builds a
// stage that writes each batch it receives with a single bulk request and
// passes the batch on unchanged, whatever the backend answered.
package elastictea
