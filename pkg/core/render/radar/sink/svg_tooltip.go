package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/radar"
)

const tooltipWidth = 280.0

const tooltipCSS = `
    #radar-tooltip { pointer-events: none; transition: opacity 0.15s ease; }
    #radar-tooltip[visibility="hidden"] { opacity: 0; }
    #radar-tooltip[visibility="visible"] { opacity: 1; }`

// tooltipJS is formatted with: height, margin, offset, ring text color,
// new color, status color.
const tooltipJS = `
    const svg = document.querySelector('svg');
    const tip = document.getElementById('radar-tooltip');
    const H = %.0f, MARGIN = %.0f, OFFSET = %.0f;
    const field = (cls) => tip.querySelector('.' + cls);
    function pointer(evt) {
      const pt = svg.createSVGPoint();
      pt.x = evt.clientX; pt.y = evt.clientY;
      return pt.matrixTransform(svg.getScreenCTM().inverse());
    }
    function wrap(text, width, lines) {
      const out = [];
      let line = '';
      text.replace(/\\n/g, ' ').split(/\s+/).forEach(w => {
        if (!w) return;
        if ((line + ' ' + w).trim().length > width) { out.push(line); line = w; } else { line = (line + ' ' + w).trim(); }
      });
      if (line) out.push(line);
      if (out.length > lines) { out.length = lines; out[lines - 1] += '…'; }
      return out;
    }
    function show(el, evt) {
      const d = el.dataset;
      field('tt-name').textContent = d.name;
      const badges = ['Quadrant: ' + d.quadrant.charAt(0).toUpperCase() + d.quadrant.slice(1), 'Ring: ' + d.ring];
      if (d.theme) badges.push('Theme: ' + d.theme);
      if (d.proximity) badges.push('Proximity: ' + d.proximity);
      if (d.new) badges.push('New');
      if (d.status) badges.push(d.status);
      field('tt-badges').textContent = badges.join('  ·  ');
      field('tt-ring').setAttribute('fill', d.color);
      field('tt-ring').setAttribute('stroke', d.new ? '%s' : '%s');
      const desc = field('tt-desc');
      desc.textContent = '';
      wrap(d.description || '', 40, 5).forEach((l, i) => {
        const ts = document.createElementNS('http://www.w3.org/2000/svg', 'tspan');
        ts.setAttribute('x', 14); ts.setAttribute('dy', i ? 16 : 0); ts.textContent = l;
        desc.appendChild(ts);
      });
      field('tt-status').setAttribute('fill', d.status ? '%s' : 'none');
      const p = pointer(evt), vb = svg.viewBox.baseVal;
      let y = p.y + OFFSET;
      if (p.y + H + MARGIN > vb.y + vb.height) y = p.y - H - OFFSET;
      const x = Math.min(p.x + OFFSET, vb.x + vb.width - %.0f);
      tip.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
      tip.setAttribute('visibility', 'visible');
    }
    document.querySelectorAll('.blip').forEach(el => {
      el.addEventListener('mouseenter', evt => show(el, evt));
      el.addEventListener('mouseleave', () => tip.setAttribute('visibility', 'hidden'));
      el.addEventListener('click', () => {
        document.querySelectorAll('.blip.active').forEach(b => b.classList.remove('active'));
        el.classList.add('active');
        svg.dispatchEvent(new CustomEvent('radar:select', { detail: { index: Number(el.dataset.index) } }));
      });
    });`

func renderTooltip(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <g id="radar-tooltip" visibility="hidden">
    <rect width="%.0f" height="%.0f" rx="6" fill="white" stroke="#ccc" stroke-width="1" filter="url(#tile-shadow)"/>
    <circle class="tt-ring" cx="18" cy="20" r="%.0f" stroke-width="2"/>
    <circle class="tt-status" cx="%.0f" cy="20" r="4"/>
    <text class="tt-name" x="30" y="25" font-family="%s" font-size="15" font-weight="bold" fill="#333"></text>
    <text class="tt-badges" x="14" y="48" font-family="%s" font-size="11" fill="#666"></text>
    <text class="tt-desc" x="14" y="72" font-family="%s" font-size="12" fill="#333"></text>
  </g>
`, tooltipWidth, chart.TooltipHeight, chart.BlipRadius, tooltipWidth-16,
		styles.FontFamily, styles.FontFamily, styles.FontFamily)

	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", tooltipCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA["+tooltipJS+"\n  ]]></script>\n",
		chart.TooltipHeight, chart.TooltipMargin, chart.TooltipOffset,
		radar.NewColor, chart.BlipStroke, radar.StatusColor, tooltipWidth)
}
