package logboard

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Dashboard returns the dashboard page for the given site name. The page is
// a static shell; dashboard.js polls the stats endpoint and fills it in.
func Dashboard(name string) templ.Component {
	page := fmt.Sprintf(dashboardPage, html.EscapeString(name))
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, page)
		return err
	})
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%[1]s</title>
<link rel="stylesheet" href="/style.css">
<script src="/dashboard.js" defer></script>
</head>
<body>
<header>
<h1>%[1]s</h1>
<p class="tagline">Access log overview, refreshed every 30 seconds</p>
<p class="error" id="load-error" hidden>Stats are unavailable right now. Retrying shortly.</p>
</header>
<main>
<section class="cards">
<article class="card"><h2 id="total-requests">0</h2><p>Requests</p></article>
<article class="card"><h2 id="unique-visitors">0</h2><p>Unique visitors</p></article>
<article class="card"><h2 id="pages-tracked">0</h2><p>Pages ranked</p></article>
</section>
<section class="panel">
<h3>Traffic sources</h3>
<div id="sources-chart" class="chart"><p class="empty">No tracking events yet.</p></div>
</section>
<div class="columns">
<section class="panel">
<h3>Top visitors</h3>
<table>
<thead><tr><th>#</th><th>Address</th><th>Hits</th><th>Share</th></tr></thead>
<tbody id="top-ips-body"></tbody>
</table>
</section>
<section class="panel">
<h3>Top pages</h3>
<table>
<thead><tr><th>#</th><th>Path</th><th>Hits</th></tr></thead>
<tbody id="top-pages-body"></tbody>
</table>
</section>
</div>
<section class="panel">
<h3>Recent visitors</h3>
<table>
<thead><tr><th>Time</th><th>Address</th><th>Path</th><th>Status</th></tr></thead>
<tbody id="recent-body"></tbody>
</table>
</section>
</main>
<footer>Updated <span id="updated-at">never</span></footer>
</body>
</html>
`
