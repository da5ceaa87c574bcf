package site

// pageTemplates holds the grid, detail, lightbox and message pages. Each
// page is executed by name.
const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}} · gamecat</title>
  <link rel="stylesheet" href="/_gamecat/style.css">
</head>
{{end}}

{{define "grid"}}{{template "head" "Games"}}
<body class="grid-page">
  <header class="top-bar">
    <h1><a href="/">Games</a></h1>
    {{with .Source}}<span class="repo-info" id="repo-info">{{.}}</span>{{end}}
    {{if .Games}}<input type="search" id="search" placeholder="Search games..." autocomplete="off">{{end}}
  </header>
  <main>
    {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
    <div class="grid" id="grid">
      {{range .Games}}
      <a class="card" href="{{gamePath .Name}}" data-name="{{.Name}}" data-api="{{cardPath .Name}}">
        <div class="thumb"><img alt="" hidden></div>
        <h2>{{.Name}}</h2>
        <p class="summary">Loading…</p>
      </a>
      {{end}}
    </div>
  </main>
  <script src="/_gamecat/grid.js"></script>
</body>
</html>{{end}}

{{define "detail"}}{{template "head" .Name}}
<body class="detail-page" data-fragment="{{.Fragment}}">
  <header class="top-bar">
    <a class="back" href="/">&larr; All games</a>
    <h1>{{.Name}}</h1>
  </header>
  <main>
    {{if .Message}}<p class="message">{{.Message}}</p>{{else}}
    <article class="body">{{.Body}}</article>
    {{if .Videos}}<section class="videos">
      {{range .Videos}}<div class="video-wrap"><iframe src="{{embedSrc .}}" loading="lazy" allowfullscreen
        allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"></iframe></div>{{end}}
    </section>{{end}}
    <section class="gallery">
      {{range .Images}}<a href="{{.Href}}"><img class="thumb" src="{{.URL}}" loading="lazy" alt=""></a>{{else}}<p class="message">{{$.NoImages}}</p>{{end}}
    </section>
    {{end}}
  </main>
  <script src="/_gamecat/detail.js"></script>
</body>
</html>{{end}}

{{define "lightbox"}}{{template "head" .Name}}
<body class="lightbox-page" data-prev="{{.PrevHref}}" data-next="{{.NextHref}}" data-close="{{.CloseHref}}" data-fragment="{{.Fragment}}">
  <div class="lightbox">
    <a class="close" href="{{.CloseHref}}" aria-label="Close">&times;</a>
    <a class="nav prev" href="{{.PrevHref}}" aria-label="Previous">&lsaquo;</a>
    <img src="{{.URL}}" alt="{{.Name}} image {{.Position}} of {{.Total}}">
    <a class="nav next" href="{{.NextHref}}" aria-label="Next">&rsaquo;</a>
    <p class="counter">{{.Position}} / {{.Total}}</p>
  </div>
  <script src="/_gamecat/lightbox.js"></script>
</body>
</html>{{end}}

{{define "message"}}{{template "head" .Title}}
<body>
  <header class="top-bar"><a class="back" href="/">&larr; All games</a></header>
  <main><p class="message">{{.Message}}</p></main>
</body>
</html>{{end}}
`

const cssContent = `:root {
  --bg: #101218;
  --card: #1a1d26;
  --text: #e8eaf0;
  --muted: #8a90a2;
  --accent: #5c9dff;
}
* { box-sizing: border-box; }
[hidden] { display: none !important; }
body { margin: 0; background: var(--bg); color: var(--text); font: 15px/1.5 system-ui, sans-serif; }
a { color: var(--accent); }
.top-bar { display: flex; gap: 1rem; align-items: center; padding: 1rem 1.5rem; border-bottom: 1px solid #262a36; }
.top-bar h1 { margin: 0; font-size: 1.3rem; }
.top-bar h1 a { color: inherit; text-decoration: none; }
.repo-info { color: var(--muted); font-size: .85rem; }
#search { margin-left: auto; padding: .4rem .7rem; border-radius: 6px; border: 1px solid #333a4a; background: var(--card); color: var(--text); min-width: 16rem; }
main { padding: 1.5rem; max-width: 1200px; margin: 0 auto; }
.message { color: var(--muted); font-style: italic; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.card { display: flex; flex-direction: column; background: var(--card); border-radius: 10px; overflow: hidden; color: inherit; text-decoration: none; }
.card .thumb { aspect-ratio: 16 / 9; background: #242835; }
.card img { width: 100%; height: 100%; object-fit: cover; }
.card h2 { font-size: 1rem; margin: .6rem .8rem .2rem; }
.card .summary { margin: 0 .8rem .8rem; color: var(--muted); font-size: .85rem; }
.body { max-width: 780px; }
.body pre { padding: .8rem; border-radius: 6px; overflow-x: auto; }
.videos { display: grid; gap: 1rem; margin: 1.5rem 0; }
.video-wrap { position: relative; padding-top: 56.25%; }
.video-wrap iframe { position: absolute; inset: 0; width: 100%; height: 100%; border: 0; }
.gallery { display: flex; flex-wrap: wrap; gap: .6rem; margin-top: 1.5rem; }
.gallery img.thumb { height: 120px; border-radius: 6px; }
.lightbox { position: fixed; inset: 0; background: rgba(0,0,0,.92); display: flex; align-items: center; justify-content: center; }
.lightbox img { max-width: 90vw; max-height: 85vh; }
.lightbox .nav, .lightbox .close { position: absolute; color: #fff; font-size: 3rem; text-decoration: none; padding: 1rem; }
.lightbox .prev { left: 1rem; }
.lightbox .next { right: 1rem; }
.lightbox .close { top: 0; right: 1rem; }
.lightbox .counter { position: absolute; bottom: 1rem; color: var(--muted); }
`

// gridJS loads cards when they scroll into view, filters them by name, and
// forwards a "#game=" deep link to the server.
const gridJS = `(function () {
  var hash = location.hash.slice(1);
  if (hash.indexOf('game=') === 0) {
    location.replace('/open?h=' + encodeURIComponent(hash));
    return;
  }

  var cards = Array.prototype.slice.call(document.querySelectorAll('.card'));

  function load(card) {
    if (card.dataset.loaded) return;
    card.dataset.loaded = '1';
    var summary = card.querySelector('.summary');
    fetch(card.dataset.api)
      .then(function (r) { if (!r.ok) throw new Error(r.status); return r.json(); })
      .then(function (c) {
        if (c.thumbnail) {
          var img = card.querySelector('img');
          img.src = c.thumbnail;
          img.hidden = false;
        }
        summary.textContent = c.summary || '';
      })
      .catch(function () { summary.textContent = ''; });
  }

  if ('IntersectionObserver' in window) {
    var io = new IntersectionObserver(function (entries) {
      entries.forEach(function (e) {
        if (e.isIntersecting) { io.unobserve(e.target); load(e.target); }
      });
    }, { rootMargin: '200px' });
    cards.forEach(function (c) { io.observe(c); });
  } else {
    cards.forEach(load);
  }

  var search = document.getElementById('search');
  if (search) {
    search.addEventListener('input', function () {
      var q = search.value.trim().toLowerCase();
      cards.forEach(function (c) {
        c.hidden = q !== '' && c.dataset.name.toLowerCase().indexOf(q) < 0;
      });
    });
  }
})();
`

const detailJS = `(function () {
  var f = document.body.dataset.fragment;
  if (f && location.hash.slice(1) !== f) history.replaceState(null, '', '#' + f);
})();
`

const lightboxJS = `(function () {
  var d = document.body.dataset;
  if (d.fragment) history.replaceState(null, '', '#' + d.fragment);
  document.addEventListener('keydown', function (e) {
    if (e.key === 'ArrowLeft') location.href = d.prev;
    else if (e.key === 'ArrowRight') location.href = d.next;
    else if (e.key === 'Escape') location.href = d.close;
  });
})();
`
