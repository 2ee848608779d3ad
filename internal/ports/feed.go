package ports

// ChangeFeed delivers the table name whenever rows in a watched table
// change. No payload beyond the name: consumers refetch.
type ChangeFeed interface {
	Changes() <-chan string
}
