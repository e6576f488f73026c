package viewer

import "html/template"

type indexData struct {
	Name string
	Keys [][2]string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { background: #111; color: #ddd; font-family: monospace; margin: 1em; }
img { display: block; max-width: 100%; border: 1px solid #333; }
button { margin: 0.2em; }
</style>
</head>
<body>
<h3>{{.Name}}</h3>
<img id="frame" src="/frame.png" alt="{{.Name}}">
<p>
<button data-key="Left">&larr;</button>
<button data-key="Right">&rarr;</button>
<button data-key="Up">&uarr;</button>
<button data-key="Down">&darr;</button>
<button data-key="+">+</button>
<button data-key="-">-</button>
<button data-key="Tab">tab</button>
<button data-key="r">reset</button>
<button data-key="k">snapshot</button>
<button id="close">close</button>
</p>
<table>{{range .Keys}}<tr><td>{{index . 0}}</td><td>{{index . 1}}</td></tr>{{end}}</table>
<script>
const img = document.getElementById("frame");
function refresh() { img.src = "/frame.png?t=" + Date.now(); }
async function press(key) {
  await fetch("/keys/" + encodeURIComponent(key), {method: "POST"});
  refresh();
}
document.querySelectorAll("button[data-key]").forEach(b =>
  b.addEventListener("click", () => press(b.dataset.key)));
document.getElementById("close").addEventListener("click", () =>
  fetch("/close", {method: "POST"}));
const names = {ArrowLeft: "Left", ArrowRight: "Right", ArrowUp: "Up", ArrowDown: "Down", Tab: "Tab", Escape: "Escape"};
document.addEventListener("keydown", e => {
  const key = names[e.key] || e.key;
  if (key.length === 1 || names[e.key]) { e.preventDefault(); press(key); }
});
</script>
</body>
</html>
`))
