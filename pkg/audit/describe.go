package audit

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// DescribeElement summarizes an element's outer HTML as its tag, id and
// remaining attributes, e.g. `input#email name="email" type="text"`.
// It returns an empty string when no element can be found.
func DescribeElement(outerHTML string) string {
	if strings.TrimSpace(outerHTML) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(outerHTML))
	if err != nil {
		return ""
	}

	el := firstContentElement(doc)
	if el == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(el.Data)
	for _, attr := range el.Attr {
		if attr.Key == "id" && attr.Val != "" {
			b.WriteString("#" + attr.Val)
		}
	}
	for _, attr := range el.Attr {
		if attr.Key == "id" {
			continue
		}
		if attr.Val == "" {
			fmt.Fprintf(&b, " %s", attr.Key)
			continue
		}
		fmt.Fprintf(&b, " %s=%q", attr.Key, attr.Val)
	}
	return b.String()
}

// firstContentElement returns the first element below the implied
// html/head/body wrappers the parser adds.
func firstContentElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "html", "head", "body":
		default:
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstContentElement(c); found != nil {
			return found
		}
	}
	return nil
}
