package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	Theme       string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Theme == "" {
		config.Theme = "light"
	}

	if config.Title == "" {
		config.Title = "Wellness Forecast"
	}

	if config.Description == "" {
		config.Description = "Weekly wellness report with AI forecasts, trend analysis and threshold alerts."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			g.Attr("data-theme", config.Theme),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
			),
			Body(
				Class("bg-base-100 text-base-content"),
				g.Group(content),
			),
		),
	})
}
