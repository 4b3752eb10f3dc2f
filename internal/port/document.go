package port

// Document is a read-only paginated document supplied by the caller.
// Pages are addressed from 0.
type Document interface {
	PageCount() int
	PageText(i int) (string, error)
}
