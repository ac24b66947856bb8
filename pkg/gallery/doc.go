// Package gallery renders media records into a single static HTML page.
//
// The page is assembled as a golang.org/x/net/html node tree and serialized
// with html.Render, so captions, URLs and site settings are escaped in one
// place. Captions are shortened with Shorten before they reach a card.
//
//	r := gallery.NewRenderer(cfg.Site, cfg.Render.CaptionLength, log)
//	err := r.WriteFile(store, cfg.Output.HTMLPath, records)
package gallery
