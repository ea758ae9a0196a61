package httpapi

import (
	"net/http"
)

// frontendHTML is the embedded HTML for the catalog browser.
// Single page, no build step, pure CSS.
const frontendHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>gridcrs - Dataset Catalog</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --error: #dc2626;
            --bg: #f8fafc;
            --card: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
            --radius: 8px;
            --shadow: 0 1px 3px rgba(0,0,0,0.1);
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.5;
        }
        .container { max-width: 900px; margin: 0 auto; padding: 1rem; }
        header {
            padding: 1.5rem 0;
            border-bottom: 1px solid var(--border);
            margin-bottom: 1.5rem;
            display: flex;
            justify-content: space-between;
            align-items: baseline;
        }
        header h1 { font-size: 1.5rem; font-weight: 600; }
        header a { color: var(--primary); text-decoration: none; font-size: 0.9rem; }
        .card {
            background: var(--card);
            border: 1px solid var(--border);
            border-radius: var(--radius);
            box-shadow: var(--shadow);
            padding: 1rem;
            margin-bottom: 1rem;
        }
        .card h2 { font-size: 1.1rem; margin-bottom: 0.25rem; }
        .meta { color: var(--text-muted); font-size: 0.85rem; margin-bottom: 0.5rem; }
        .badge {
            display: inline-block;
            padding: 0.1rem 0.5rem;
            border-radius: 999px;
            font-size: 0.75rem;
            color: #fff;
        }
        .badge.ready { background: var(--success); }
        .badge.error { background: var(--error); }
        .badge.loading { background: var(--text-muted); }
        .crs-list { margin-top: 0.5rem; font-size: 0.9rem; }
        .crs-list li { margin-left: 1.25rem; }
        .axis { color: var(--text-muted); font-family: monospace; font-size: 0.8rem; }
        button {
            background: var(--primary);
            color: #fff;
            border: none;
            border-radius: var(--radius);
            padding: 0.5rem 1rem;
            cursor: pointer;
            font-size: 0.9rem;
        }
        button:disabled { opacity: 0.6; cursor: wait; }
        #status { margin-left: 0.75rem; font-size: 0.85rem; color: var(--text-muted); }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Dataset Catalog</h1>
            <nav>
                <a href="/docs">API docs</a>
            </nav>
        </header>
        <div style="margin-bottom: 1rem">
            <button id="sync">Sync now</button><span id="status"></span>
        </div>
        <div id="datasets"></div>
    </div>
    <script>
        async function load() {
            const res = await fetch('/api/v1/datasets');
            const data = await res.json();
            const root = document.getElementById('datasets');
            root.innerHTML = '';
            for (const ds of data.datasets || []) {
                root.appendChild(await renderDataset(ds));
            }
            if (!data.count) {
                root.innerHTML = '<p class="meta">No datasets registered.</p>';
            }
        }

        async function renderDataset(ds) {
            const card = document.createElement('div');
            card.className = 'card';
            const size = ds.size ? (ds.size / 1048576).toFixed(1) + ' MiB' : '';
            let html = '<h2>' + esc(ds.name) +
                ' <span class="badge ' + esc(ds.status) + '">' + esc(ds.status) + '</span></h2>' +
                '<div class="meta">' + esc(ds.location) + (size ? ' &middot; ' + size : '') +
                (ds.format ? ' &middot; ' + esc(ds.format) : '') + '</div>';
            if (ds.error) {
                html += '<div class="meta" style="color:var(--error)">' + esc(ds.error) + '</div>';
            }
            if (ds.crs_count > 0) {
                const res = await fetch('/api/v1/datasets/' + encodeURIComponent(ds.id) + '/crs');
                const crs = await res.json();
                html += '<ul class="crs-list">';
                for (const c of crs.crs || []) {
                    const axes = (c.axes || []).map(a =>
                        a.name + ' (' + a.kind + ', ' + a.direction + ')').join(', ');
                    html += '<li><strong>' + esc(c.name) + '</strong> &mdash; ' + esc(c.type) +
                        '<div class="axis">' + esc(axes) + '</div></li>';
                }
                html += '</ul>';
            }
            card.innerHTML = html;
            return card;
        }

        function esc(s) {
            return String(s ?? '').replace(/[&<>"']/g,
                c => ({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]));
        }

        document.getElementById('sync').addEventListener('click', async (e) => {
            const btn = e.target, status = document.getElementById('status');
            btn.disabled = true;
            status.textContent = 'syncing...';
            try {
                const res = await fetch('/api/v1/sync', { method: 'POST' });
                if (res.status === 429) {
                    status.textContent = 'rate limited, try again shortly';
                } else if (res.ok) {
                    const r = await res.json();
                    status.textContent = 'added ' + r.datasets_added +
                        ', updated ' + r.datasets_updated +
                        ', removed ' + r.datasets_removed;
                    await load();
                } else {
                    status.textContent = 'sync failed';
                }
            } finally {
                btn.disabled = false;
            }
        });

        load();
    </script>
</body>
</html>`

// swaggerHTML renders the Swagger UI against the served OpenAPI spec.
const swaggerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>gridcrs - API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        SwaggerUIBundle({
            url: '/openapi.json',
            dom_id: '#swagger-ui',
            presets: [SwaggerUIBundle.presets.apis],
        });
    </script>
</body>
</html>`

// handleFrontend serves the catalog browser.
func (s *Server) handleFrontend(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(frontendHTML))
}

// handleSwaggerUI serves the Swagger UI.
func (s *Server) handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(swaggerHTML))
}
