package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
)

//go:embed docs/api.md
var apiReference []byte

const docsTemplateHead = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Lecture Evaluation API</title>
  </head>
  <body>
`

const docsTemplateFoot = `  </body>
</html>
`

// RegisterDocsEndpoint serves the API reference at /docs
func RegisterDocsEndpoint(s *server.Server) error {
	page, err := renderDocs(apiReference)
	if err != nil {
		return err
	}
	s.Router.HandleFunc("/docs", handleDocs(page)).Methods("GET")
	return nil
}

// renderDocs converts the Markdown reference to a full HTML page
func renderDocs(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	buf.WriteString(docsTemplateHead)
	if err := md.Convert(markdown, &buf); err != nil {
		return nil, err
	}
	buf.WriteString(docsTemplateFoot)
	return buf.Bytes(), nil
}

func handleDocs(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
