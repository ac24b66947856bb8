package gallery

import (
	"fmt"
	"strings"
)

// stylesheet is the page CSS. The hero image is set per page through an
// inline style so configuration never lands inside the raw <style> text.
const stylesheet = `
:root { --max-width: 1200px; }
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: #fafafa;
  color: #111;
}
.hero {
  height: 320px;
  background-position: center;
  background-size: cover;
  background-repeat: no-repeat;
}
.navbar { background: white; border-bottom: 1px solid #eee; }
.nav-inner {
  max-width: var(--max-width);
  margin: 0 auto;
  padding: 16px 20px;
  display: flex;
  align-items: center;
}
.logo { font-weight: 800; font-size: 18px; }
nav { margin-left: auto; }
nav a {
  text-decoration: none;
  margin-left: 20px;
  color: #111;
  font-weight: 500;
  transition: opacity 0.2s ease;
}
nav a:hover { opacity: 0.6; }
main {
  max-width: var(--max-width);
  margin: 42px auto;
  padding: 0 20px 70px 20px;
}
h2 { margin: 0 0 16px; }
.grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(260px, 1fr));
  gap: 24px;
}
.card {
  display: block;
  background: white;
  border-radius: 18px;
  overflow: hidden;
  text-decoration: none;
  color: inherit;
  box-shadow: 0 12px 30px rgba(0,0,0,0.06);
  transition: transform 0.2s ease, box-shadow 0.2s ease;
}
.card:hover {
  transform: translateY(-4px);
  box-shadow: 0 18px 40px rgba(0,0,0,0.08);
}
.card img {
  width: 100%;
  height: 300px;
  object-fit: cover;
  display: block;
}
.meta { padding: 14px 16px; }
.caption {
  font-size: 14px;
  line-height: 1.4;
  max-height: 3.6em;
  overflow: hidden;
}
.link { margin-top: 8px; font-size: 13px; opacity: 0.6; }
.footer {
  margin-top: 24px;
  font-size: 12px;
  opacity: 0.55;
}
`

// cssString quotes s as a CSS string literal. Quotes, backslashes and
// control characters are written as CSS hex escapes.
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\' || r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// heroStyle is the inline style carrying the header image
func heroStyle(image string) string {
	if image == "" {
		return ""
	}
	return "background-image: url(" + cssString(image) + ");"
}
