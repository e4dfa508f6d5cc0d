// Package site builds the view models of the public pages: the news carousel and the centers map.
package site

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"vidar/internal/model"
)

// Texts shown by the news carousel.
const (
	NoDateText = "Fecha no disponible"
	NoNewsText = "No hay noticias recientes."
)

// loopThreshold is the slide count the carousel needs before it loops.
const loopThreshold = 3

// Slide is one rendered news item.
type Slide struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Image   string `json:"image"`
	Content string `json:"content_html"`
	Date    string `json:"date"`
}

// NewsView is what the carousel displays. Message is set only when there are no slides.
type NewsView struct {
	Slides  []Slide `json:"slides"`
	Loop    bool    `json:"loop"`
	Message string  `json:"message,omitempty"`
}

// newMarkdown returns the renderer for news bodies. Raw HTML in the source is not passed through.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))
}

// BuildNews turns stored news, already ordered newest first, into carousel slides.
func BuildNews(md goldmark.Markdown, items []model.NewsItem) (NewsView, error) {
	view := NewsView{Slides: make([]Slide, 0, len(items))}
	for _, it := range items {
		var buf bytes.Buffer
		if err := md.Convert([]byte(it.Contenido), &buf); err != nil {
			return NewsView{}, fmt.Errorf("render news %s: %w", it.ID.Hex(), err)
		}
		img := it.Imagen
		if img == "" {
			img = model.DefaultNewsImage
		}
		view.Slides = append(view.Slides, Slide{
			ID:      it.ID.Hex(),
			Title:   it.Titulo,
			Image:   img,
			Content: buf.String(),
			Date:    FormatDate(it.Fecha),
		})
	}
	if len(view.Slides) == 0 {
		view.Message = NoNewsText
	}
	view.Loop = len(view.Slides) >= loopThreshold
	return view, nil
}
