package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

// slideDuration is the entry animation length. Purely presentational; the
// engine's expiry timing is unaffected by it.
const slideDuration = 200 * time.Millisecond

// Renderer renders toasts to HTML against a fixed theme.
type Renderer struct {
	theme theme.Theme
}

// NewRenderer creates a renderer using the given theme.
func NewRenderer(t theme.Theme) *Renderer {
	return &Renderer{theme: t}
}

// Stylesheet returns the <style> payload: the theme's variable block plus
// the keyframes the cards and progress bars animate with.
func (r *Renderer) Stylesheet() string {
	var b strings.Builder
	b.WriteString(r.theme.CSSVariables())
	b.WriteString(`
@keyframes toastline-progress {
	from { width: 100%; }
	to { width: 0; }
}
@keyframes toastline-slide-in-left {
	from { transform: translateX(calc((var(--toastline-width) + 24px) * -1)); }
	to { transform: translateX(0); }
}
@keyframes toastline-slide-in-right {
	from { transform: translateX(calc(var(--toastline-width) + 24px)); }
	to { transform: translateX(0); }
}
@keyframes toastline-fade-in {
	from { opacity: 0; }
	to { opacity: 1; }
}
`)
	return b.String()
}

// Regions renders every position container with its current toasts, in the
// canonical position order.
func (r *Renderer) Regions(store *toaster.Store) string {
	var b strings.Builder
	for _, pos := range toast.Positions {
		r.writeRegion(&b, pos, store.Queue(pos).Peek())
	}
	return b.String()
}

// Region renders one fixed-position container and its toasts in insertion
// order.
func (r *Renderer) Region(pos toast.Position, toasts []toast.Toast) string {
	var b strings.Builder
	r.writeRegion(&b, pos, toasts)
	return b.String()
}

func (r *Renderer) writeRegion(b *strings.Builder, pos toast.Position, toasts []toast.Toast) {
	fmt.Fprintf(b, `<div class="toastline-region" data-position="%s" style="position:fixed;%swidth:var(--toastline-width);z-index:var(--toastline-z-index);">`,
		pos, regionPlacement(pos))
	for _, t := range toasts {
		r.writeToast(b, t)
	}
	b.WriteString("</div>")
}

// Toast renders a single toast card.
func (r *Renderer) Toast(t toast.Toast) string {
	var b strings.Builder
	r.writeToast(&b, t)
	return b.String()
}

func (r *Renderer) writeToast(b *strings.Builder, t toast.Toast) {
	style := r.theme.Level(t.Level)

	fmt.Fprintf(b, `<div class="toastline-toast" data-id="%s" data-level="%s" data-dismissable="%t" style="`,
		escapeHTML(string(t.ID)), t.Level, t.Dismissable)
	fmt.Fprintf(b, "margin:12px 0;padding:16px;position:relative;overflow:hidden;box-sizing:border-box;border:1px solid;border-radius:4px;")
	fmt.Fprintf(b, "background-color:%s;border-color:%s;cursor:%s;", style.Background, style.Border, cursor(t.Dismissable))
	fmt.Fprintf(b, "animation:%s %dms linear forwards;", slideInAnimation(t.Position), slideDuration.Milliseconds())
	b.WriteString(`">`)

	fmt.Fprintf(b, `<span style="color:%s;font-size:var(--toastline-font-size);line-height:var(--toastline-line-height);font-family:var(--toastline-font-family);font-weight:var(--toastline-font-weight);display:inline-block;max-width:100%%;text-overflow:ellipsis;overflow:hidden;">%s</span>`,
		style.Text, escapeHTML(t.Message))

	if t.Expires() && t.Progress {
		fmt.Fprintf(b, `<div class="toastline-progress" style="height:var(--toastline-progress-height);width:100%%;background-color:%s;position:absolute;bottom:0;left:0;animation:toastline-progress %dms linear forwards;"></div>`,
			style.Text, t.Expiry.Milliseconds())
	}

	b.WriteString("</div>")
}

// regionPlacement returns the fixed-position offsets for a region container.
func regionPlacement(pos toast.Position) string {
	switch pos {
	case toast.TopLeft:
		return "top:0;left:0;"
	case toast.TopRight:
		return "top:0;right:0;"
	case toast.TopCenter:
		return "top:0;left:50%;transform:translateX(-50%);"
	case toast.BottomLeft:
		return "bottom:0;left:0;"
	case toast.BottomRight:
		return "bottom:0;right:0;"
	case toast.BottomCenter:
		return "bottom:0;left:50%;transform:translateX(-50%);"
	default:
		return "bottom:0;left:0;"
	}
}

func slideInAnimation(pos toast.Position) string {
	switch pos {
	case toast.TopLeft, toast.BottomLeft:
		return "toastline-slide-in-left"
	case toast.TopRight, toast.BottomRight:
		return "toastline-slide-in-right"
	default:
		return "toastline-fade-in"
	}
}

func cursor(dismissable bool) string {
	if dismissable {
		return "pointer"
	}
	return "default"
}
