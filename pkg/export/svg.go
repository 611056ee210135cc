package export

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// Swatch sheet layout, in pixels
const (
	svgWidth      = 640
	svgRowHeight  = 120
	svgAvatarSize = 100
	svgPadding    = 10
	svgNoColor    = "#d0d0d0"
)

// WriteSVG draws one row per group: a round avatar swatch (grey outline
// when the group has no usable color), the name, the privacy label and counts.
func WriteSVG(w io.Writer, groups []model.Group) {
	height := svgPadding*2 + len(groups)*svgRowHeight
	if len(groups) == 0 {
		height = svgRowHeight
	}

	canvas := svg.New(w)
	canvas.Start(svgWidth, height)
	canvas.Rect(0, 0, svgWidth, height, "fill:white")

	if len(groups) == 0 {
		canvas.Text(svgWidth/2, svgRowHeight/2, "No groups", "text-anchor:middle;font-family:sans-serif;font-size:18px;fill:#666")
		canvas.End()
		return
	}

	r := svgAvatarSize / 2
	for i, g := range groups {
		top := svgPadding + i*svgRowHeight
		cx := svgPadding + r
		cy := top + r

		canvas.Group(fmt.Sprintf(`id="group-%d"`, g.ID))
		if fill, ok := svgColor(g.AvatarColor); ok {
			canvas.Circle(cx, cy, r, "fill:"+fill)
		} else {
			canvas.Circle(cx, cy, r, "fill:none;stroke-dasharray:4;stroke:"+svgNoColor)
		}

		textX := svgPadding*3 + svgAvatarSize
		canvas.Text(textX, top+30, g.Name, "font-family:sans-serif;font-size:20px;font-weight:bold")
		canvas.Text(textX, top+55, fmt.Sprintf("%s · %d members", g.PrivacyLabel(), g.MembersCount),
			"font-family:sans-serif;font-size:14px;fill:#444")
		if g.HasFriends() {
			canvas.Text(textX, top+78, fmt.Sprintf("Friends: %d", len(g.Friends)),
				"font-family:sans-serif;font-size:14px;fill:#444")
		}
		canvas.Gend()
	}

	canvas.End()
}

// svgColor accepts a CSS color name or #rgb/#rrggbb hex. Anything else is
// rejected since svgo writes style values unescaped.
func svgColor(tag string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", false
	}
	if tag[0] == '#' {
		if len(tag) != 4 && len(tag) != 7 {
			return "", false
		}
		for _, c := range tag[1:] {
			if !strings.ContainsRune("0123456789abcdef", c) {
				return "", false
			}
		}
		return tag, true
	}
	for _, c := range tag {
		if c < 'a' || c > 'z' {
			return "", false
		}
	}
	return tag, true
}
