package gallery

import (
	"bytes"
	"time"

	"iggallery/pkg/config"
	"iggallery/pkg/errors"
	"iggallery/pkg/logger"
	"iggallery/pkg/models"
	"iggallery/pkg/storage"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	defaultCaptionLength = config.DefaultCaptionLength

	// footerLayout formats the generation time shown under the grid
	footerLayout = "2006-01-02 15:04"
)

// Renderer turns media records into a static gallery page
type Renderer struct {
	site          config.SiteConfig
	captionLength int
	now           func() time.Time
	logger        logger.Logger
}

// NewRenderer creates a renderer for the given page shell
func NewRenderer(site config.SiteConfig, captionLength int, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if captionLength <= 0 {
		captionLength = defaultCaptionLength
	}

	return &Renderer{
		site:          site,
		captionLength: captionLength,
		now:           time.Now,
		logger:        log,
	}
}

// SetClock replaces the clock used for the footer timestamp
func (r *Renderer) SetClock(now func() time.Time) {
	r.now = now
}

// Document builds the page as an HTML node tree, one card per record in
// input order
func (r *Renderer) Document(records []models.MediaRecord) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(text("\n"))

	root := element(atom.Html, attr("lang", "en"))
	appendLines(root, r.head(), r.body(records))
	doc.AppendChild(root)
	doc.AppendChild(text("\n"))

	return doc
}

// Render serializes the page. Every text and attribute value is escaped by
// the serializer.
func (r *Renderer) Render(records []models.MediaRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, r.Document(records)); err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: "failed to render gallery page",
			Err:     err,
		}
	}
	return buf.Bytes(), nil
}

// WriteFile renders records and atomically replaces path with the result
func (r *Renderer) WriteFile(store *storage.Manager, path string, records []models.MediaRecord) error {
	page, err := r.Render(records)
	if err != nil {
		return err
	}

	if err := store.WriteFileAtomic(path, page); err != nil {
		return err
	}

	r.logger.InfoWithFields("gallery page written", map[string]interface{}{
		"path":  path,
		"cards": len(records),
		"bytes": len(page),
	})
	return nil
}

func (r *Renderer) head() *html.Node {
	head := element(atom.Head)

	title := element(atom.Title)
	title.AppendChild(text(r.site.Title))

	style := element(atom.Style)
	style.AppendChild(text(stylesheet))

	appendLines(head,
		element(atom.Meta, attr("charset", "UTF-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1.0")),
		title,
		style,
	)
	return head
}

func (r *Renderer) body(records []models.MediaRecord) *html.Node {
	body := element(atom.Body)

	hero := element(atom.Header, attr("class", "hero"))
	if style := heroStyle(r.site.HeaderImage); style != "" {
		hero.Attr = append(hero.Attr, attr("style", style))
	}

	appendLines(body, hero, r.navbar(), r.main(records))
	return body
}

func (r *Renderer) navbar() *html.Node {
	logo := element(atom.Div, attr("class", "logo"))
	logo.AppendChild(text(r.site.Title))

	nav := element(atom.Nav)
	links := make([]*html.Node, 0, len(r.site.NavLinks))
	for _, link := range r.site.NavLinks {
		a := element(atom.A, attr("href", link.URL))
		if link.External {
			a.Attr = append(a.Attr, attr("target", "_blank"), attr("rel", "noopener"))
		}
		a.AppendChild(text(link.Label))
		links = append(links, a)
	}
	appendLines(nav, links...)

	inner := element(atom.Div, attr("class", "nav-inner"))
	appendLines(inner, logo, nav)

	navbar := element(atom.Div, attr("class", "navbar"))
	appendLines(navbar, inner)
	return navbar
}

func (r *Renderer) main(records []models.MediaRecord) *html.Node {
	heading := element(atom.H2)
	heading.AppendChild(text(r.site.Heading))

	grid := element(atom.Div, attr("class", "grid"))
	cards := make([]*html.Node, 0, len(records))
	for i := range records {
		cards = append(cards, r.card(&records[i]))
	}
	appendLines(grid, cards...)

	footer := element(atom.Div, attr("class", "footer"))
	footer.AppendChild(text("Updated " + r.now().UTC().Format(footerLayout) + " UTC"))

	content := element(atom.Main)
	appendLines(content, heading, grid, footer)
	return content
}

func (r *Renderer) card(rec *models.MediaRecord) *html.Node {
	img := element(atom.Img,
		attr("src", rec.DisplayURL),
		attr("alt", ""),
		attr("loading", "lazy"),
	)

	caption := element(atom.Div, attr("class", "caption"))
	caption.AppendChild(text(Shorten(rec.Caption, r.captionLength)))

	label := element(atom.Div, attr("class", "link"))
	label.AppendChild(text(r.site.LinkLabel))

	meta := element(atom.Div, attr("class", "meta"))
	meta.AppendChild(caption)
	meta.AppendChild(label)

	a := element(atom.A,
		attr("class", "card"),
		attr("href", rec.Permalink),
		attr("target", "_blank"),
		attr("rel", "noopener"),
	)
	a.AppendChild(img)
	a.AppendChild(meta)
	return a
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendLines appends children to parent, each on its own line
func appendLines(parent *html.Node, children ...*html.Node) {
	for _, child := range children {
		parent.AppendChild(text("\n"))
		parent.AppendChild(child)
	}
	if len(children) > 0 {
		parent.AppendChild(text("\n"))
	}
}
