// Copyright 2026 The Markit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package markit

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/shurcooL/sanitized_anchor_name"
)

// RenderBuffer accumulates HTML output. It is a thin wrapper over
// bytes.Buffer so render methods share one error-free, allocation-light
// sink, the way mistune's HTMLRenderer writes directly into an
// io.Writer via small helper methods instead of fmt.Fprintf everywhere.
type RenderBuffer struct {
	bytes.Buffer
}

// WriteEscaped writes s with HTML special characters escaped, for
// renderers (including ones outside this package) that need to emit
// literal text content safely.
func (b *RenderBuffer) WriteEscaped(s string) {
	b.WriteString(html.EscapeString(s))
}

func (b *RenderBuffer) tag(name string, attrs ...[2]string) {
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		if a[0] == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a[0])
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a[1]))
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func (b *RenderBuffer) closeTag(name string) {
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func (b *RenderBuffer) selfClosingTag(name string, xhtml bool, attrs ...[2]string) {
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		if a[0] == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a[0])
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a[1]))
		b.WriteByte('"')
	}
	if xhtml {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
	}
}

// NewHTMLRenderer builds a Renderer that converts a parsed token tree
// into HTML, honoring opts's escaping, XHTML, and raw-HTML policy.
//
// # Security considerations
//
// Markdown's raw HTML and autolink constructs can introduce
// cross-site-scripting vulnerabilities when fed untrusted input.
// Pass WithIgnoreRaw to drop raw HTML entirely, or run the output
// through an HTML sanitizer; this renderer does not sanitize on its
// own.
func NewHTMLRenderer(opts *Options) *Renderer {
	r := NewRenderer(opts)
	r.On("paragraph", renderParagraph)
	r.On("heading", renderHeading(opts))
	r.On("thematic_break", renderThematicBreak(opts))
	r.On("block_code", renderBlockCode)
	r.On("block_quote", renderBlockQuote)
	r.On("list", renderList)
	r.On("list_item", renderListItem)
	r.On("table", renderTable)
	r.On("tr", renderTableRow)
	r.On("th", renderTableCell)
	r.On("td", renderTableCell)
	r.On("text", renderText(opts))
	r.On("code_span", renderCodeSpan)
	r.On("emphasis", renderWrap("em"))
	r.On("strong", renderWrap("strong"))
	r.On("strikethrough", renderWrap("del"))
	r.On("link", renderLink(opts))
	r.On("image", renderImage(opts))
	r.On("linebreak", renderLinebreak(opts))
	r.On("inline_html", renderInlineHTML(opts))
	r.On("html_block", renderHTMLBlock(opts))
	for _, p := range opts.plugins {
		for typ, fn := range p.Renderers {
			r.On(typ, fn)
		}
	}
	return r
}

// RenderHTML converts tokens to HTML, using opts (or the library
// defaults, if opts is nil) to build the renderer. A token whose Type
// has no registered render method (a plugin that was used to parse but
// never registered with this renderer) is reported as a *RenderError
// rather than panicking the caller.
func RenderHTML(w io.Writer, tokens []*Token, opts *Options) (err error) {
	if opts == nil {
		opts = NewOptions()
	}
	r := NewHTMLRenderer(opts)
	var buf RenderBuffer
	defer func() {
		if rec := recover(); rec != nil {
			mp, ok := rec.(missingMethodPanic)
			if !ok {
				panic(rec)
			}
			err = &RenderError{TokenType: mp.tokenType, Err: errUnregisteredRenderMethod}
		}
	}()
	for i, t := range tokens {
		if i > 0 {
			buf.WriteByte('\n')
		}
		r.renderOne(&buf, t)
	}
	if _, werr := w.Write(buf.Bytes()); werr != nil {
		return &RenderError{TokenType: "document", Err: werr}
	}
	return nil
}

func renderChildren(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	for _, c := range tok.Children {
		render(buf, c)
	}
}

func renderParagraph(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<p>")
	renderChildren(buf, tok, render)
	buf.WriteString("</p>")
}

func renderHeading(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		level := tok.AttrInt("level")
		if level < 1 || level > 6 {
			level = 1
		}
		name := "h" + strconv.Itoa(level)
		if id := tok.AttrString("id"); id != "" {
			buf.tag(name, [2]string{"id", id})
		} else {
			buf.WriteByte('<')
			buf.WriteString(name)
			buf.WriteByte('>')
		}
		renderChildren(buf, tok, render)
		buf.closeTag(name)
	}
}

func renderThematicBreak(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.selfClosingTag("hr", opts.xhtml)
	}
}

func renderBlockCode(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<pre><code")
	if info := strings.TrimSpace(tok.AttrString("info")); info != "" {
		lang := info
		if i := strings.IndexAny(lang, " \t"); i >= 0 {
			lang = lang[:i]
		}
		fmt.Fprintf(buf, ` class="language-%s"`, html.EscapeString(lang))
	}
	buf.WriteByte('>')
	if tok.Raw != "" {
		buf.WriteString(html.EscapeString(tok.Raw))
		buf.WriteByte('\n')
	}
	buf.WriteString("</code></pre>")
}

func renderBlockQuote(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<blockquote>")
	renderChildren(buf, tok, render)
	buf.WriteString("</blockquote>")
}

func renderList(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	name := "ul"
	if tok.AttrBool("ordered") {
		name = "ol"
	}
	if name == "ol" && tok.AttrInt("start") != 1 {
		buf.tag(name, [2]string{"start", strconv.Itoa(tok.AttrInt("start"))})
	} else {
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteByte('>')
	}
	tight := tok.AttrBool("tight")
	for _, item := range tok.Children {
		item.SetAttr("tight", tight)
	}
	renderChildren(buf, tok, render)
	buf.closeTag(name)
}

func renderListItem(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	if tok.AttrBool("task") {
		buf.WriteString(`<li class="task-list-item">`)
		if tok.AttrBool("checked") {
			buf.WriteString(`<input type="checkbox" checked disabled> `)
		} else {
			buf.WriteString(`<input type="checkbox" disabled> `)
		}
	} else {
		buf.WriteString("<li>")
	}
	if tight, ok := tok.Attrs["tight"].(bool); ok && tight {
		renderTightChildren(buf, tok, render)
	} else {
		renderChildren(buf, tok, render)
	}
	buf.WriteString("</li>")
}

// renderTightChildren unwraps a tight list item's paragraph tokens so
// their content is emitted without surrounding <p> tags.
func renderTightChildren(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	for _, c := range tok.Children {
		if c.Type == "paragraph" {
			renderChildren(buf, c, render)
			continue
		}
		render(buf, c)
	}
}

func renderTable(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<table>")
	if len(tok.Children) > 0 {
		buf.WriteString("<thead>")
		render(buf, tok.Children[0])
		buf.WriteString("</thead>")
	}
	if len(tok.Children) > 1 {
		buf.WriteString("<tbody>")
		for _, row := range tok.Children[1:] {
			render(buf, row)
		}
		buf.WriteString("</tbody>")
	}
	buf.WriteString("</table>")
}

func renderTableRow(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<tr>")
	renderChildren(buf, tok, render)
	buf.WriteString("</tr>")
}

func renderTableCell(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	if align := tok.AttrString("align"); align != "" {
		buf.tag(tok.Type, [2]string{"style", "text-align:" + align})
	} else {
		buf.WriteByte('<')
		buf.WriteString(tok.Type)
		buf.WriteByte('>')
	}
	renderChildren(buf, tok, render)
	buf.closeTag(tok.Type)
}

func renderText(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.WriteString(html.EscapeString(tok.Text))
	}
}

func renderCodeSpan(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
	buf.WriteString("<code>")
	buf.WriteString(html.EscapeString(tok.Text))
	buf.WriteString("</code>")
}

func renderWrap(name string) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteByte('>')
		renderChildren(buf, tok, render)
		buf.closeTag(name)
	}
}

func renderLink(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		href := safeURL(tok.AttrString("href"), opts)
		if title := tok.AttrString("title"); title != "" {
			buf.tag("a", [2]string{"href", href}, [2]string{"title", title})
		} else {
			buf.tag("a", [2]string{"href", href})
		}
		renderChildren(buf, tok, render)
		buf.closeTag("a")
	}
}

// harmfulSchemes is mistune's default blocklist: destinations with one
// of these schemes are replaced by a dead fragment unless the caller
// opted in with WithAllowHarmfulProtocols.
var harmfulSchemes = []string{"javascript:", "vbscript:", "file:", "data:"}

func safeURL(href string, opts *Options) string {
	if opts.allowHarmful {
		return href
	}
	lower := strings.ToLower(href)
	for _, scheme := range harmfulSchemes {
		if strings.HasPrefix(lower, scheme) {
			if scheme == "data:" && strings.HasPrefix(lower, "data:image/") {
				return href
			}
			return "#harmful-link"
		}
	}
	return href
}

func renderImage(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		attrs := [][2]string{{"src", safeURL(tok.AttrString("href"), opts)}, {"alt", tok.Text}}
		if title := tok.AttrString("title"); title != "" {
			attrs = append(attrs, [2]string{"title", title})
		}
		buf.selfClosingTag("img", opts.xhtml, attrs...)
	}
}

func renderLinebreak(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		if tok.AttrBool("hard") || opts.hardWrap {
			buf.selfClosingTag("br", opts.xhtml)
			buf.WriteByte('\n')
			return
		}
		buf.WriteByte('\n')
	}
}

func renderInlineHTML(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		if opts.ignoreRaw {
			return
		}
		if opts.escapeHTML {
			buf.WriteString(html.EscapeString(tok.Raw))
			return
		}
		buf.WriteString(tok.Raw)
	}
}

func renderHTMLBlock(opts *Options) RenderFunc {
	return func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		if opts.ignoreRaw {
			return
		}
		if opts.escapeHTML {
			buf.WriteString(html.EscapeString(tok.Raw))
			return
		}
		buf.WriteString(tok.Raw)
	}
}

// slugAnchor derives a heading id from its rendered text, using the
// same anchor-name algorithm GitHub Flavored Markdown uses so ids match
// reader expectations (lowercased, non-alphanumerics replaced). seen
// counts each base slug across calls, and a repeat gets GitHub's
// "-1", "-2", ... suffix.
func slugAnchor(text string, seen map[string]int) string {
	base := sanitized_anchor_name.Create(text)
	if base == "" {
		base = "section"
	}
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
