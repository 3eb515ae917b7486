package topics

// Renderer turns a topic's source into what the help command prints.
// format is the topic file extension, e.g. ".md" or ".txt".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim; TopicManager falls back to it when
// no renderer is configured
type PlainRenderer struct{}

// Render returns content unchanged whatever its format
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
