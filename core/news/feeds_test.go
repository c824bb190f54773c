package news

import (
	"fmt"
	"strings"
)

type rssItem struct {
	title, link, description, content, pubDate, extra string
}

// rss renders a minimal RSS 2.0 document
func rss(channelLink string, items ...rssItem) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel><title>Test</title>`)
	fmt.Fprintf(&b, "<link>%s</link>", channelLink)
	for _, it := range items {
		b.WriteString("<item>")
		fmt.Fprintf(&b, "<title><![CDATA[%s]]></title>", it.title)
		if it.link != "" {
			fmt.Fprintf(&b, "<link>%s</link>", it.link)
		}
		if it.description != "" {
			fmt.Fprintf(&b, "<description><![CDATA[%s]]></description>", it.description)
		}
		if it.content != "" {
			fmt.Fprintf(&b, "<content:encoded><![CDATA[%s]]></content:encoded>", it.content)
		}
		if it.pubDate != "" {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", it.pubDate)
		}
		b.WriteString(it.extra)
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}
