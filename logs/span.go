package logs

// Span tags log records belonging to one unit of work, e.g. one file
// transform. It rides on the context; Handler attaches it to every
// record logged under that context.
type Span string

type spanKeyType struct{}

var SpanKey spanKeyType
