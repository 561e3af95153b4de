// Command meshview serves a browser-based inspector for generated meshes.
// It renders a wireframe preview on a canvas and reports vertex and index
// counts; tessellation requests travel over a websocket.
//
//	go run ./cmd/meshview -addr :8080
package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/go-theft-auto/view3d"
)

var log = logrus.New()

var upgrader = websocket.Upgrader{
	// The inspector is a local development tool.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// meshRequest is one tessellation request from the browser.
type meshRequest struct {
	Shape  string `json:"shape"` // "sphere" or "box"
	Slices int    `json:"slices"`
	Stacks int    `json:"stacks"`
}

// meshPayload carries a generated mesh to the browser as flat arrays.
type meshPayload struct {
	Shape       string    `json:"shape"`
	NumVertices int       `json:"numVertices"`
	NumIndices  int       `json:"numIndices"`
	Positions   []float32 `json:"positions"`
	Normals     []float32 `json:"normals"`
	TexCoords   []float32 `json:"texcoords"`
	Indices     []uint16  `json:"indices"`
	Error       string    `json:"error,omitempty"`
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	http.HandleFunc("/", serveHome)
	http.HandleFunc("/ws", handleWebSocket)

	log.WithField("addr", *addr).Info("meshview listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade")
		return
	}
	defer conn.Close()
	log.WithField("remote", conn.RemoteAddr()).Info("inspector connected")

	// Initial mesh so the page has something to draw.
	if err := conn.WriteJSON(buildPayload(meshRequest{Shape: "sphere", Slices: 24, Stacks: 12})); err != nil {
		log.WithError(err).Error("websocket write")
		return
	}

	for {
		var req meshRequest
		if err := conn.ReadJSON(&req); err != nil {
			log.WithError(err).Info("inspector disconnected")
			return
		}
		if err := conn.WriteJSON(buildPayload(req)); err != nil {
			log.WithError(err).Error("websocket write")
			return
		}
	}
}

// buildPayload generates the requested mesh, reporting builder errors to
// the client instead of dropping the connection.
func buildPayload(req meshRequest) meshPayload {
	var (
		mesh *view3d.Mesh
		err  error
	)
	switch req.Shape {
	case "box":
		mesh, err = view3d.Box(1, 1, 1)
	default:
		req.Shape = "sphere"
		mesh, err = view3d.UVSphere(req.Slices, req.Stacks)
	}
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"shape": req.Shape, "slices": req.Slices, "stacks": req.Stacks,
		}).Warn("mesh request rejected")
		return meshPayload{Shape: req.Shape, Error: err.Error()}
	}

	p := meshPayload{
		Shape:       req.Shape,
		NumVertices: mesh.NumVertices(),
		NumIndices:  mesh.NumIndices(),
		Positions:   make([]float32, 0, 3*len(mesh.Vertices)),
		Normals:     make([]float32, 0, 3*len(mesh.Vertices)),
		TexCoords:   make([]float32, 0, 2*len(mesh.Vertices)),
		Indices:     mesh.Indices,
	}
	for _, v := range mesh.Vertices {
		p.Positions = append(p.Positions, v.Position.X(), v.Position.Y(), v.Position.Z())
		p.Normals = append(p.Normals, v.Normal.X(), v.Normal.Y(), v.Normal.Z())
		p.TexCoords = append(p.TexCoords, v.TexCoord.X(), v.TexCoord.Y())
	}
	return p
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>meshview</title>
<style>
  body { font-family: monospace; background: #1e1e22; color: #ddd; margin: 20px; }
  canvas { background: #101014; display: block; margin-top: 12px; }
  input { width: 60px; }
</style>
</head>
<body>
  <div>
    shape <select id="shape"><option>sphere</option><option>box</option></select>
    slices <input id="slices" type="number" value="24" min="3">
    stacks <input id="stacks" type="number" value="12" min="1">
    <button id="gen">generate</button>
    <span id="info"></span>
  </div>
  <canvas id="c" width="700" height="500"></canvas>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
let mesh = null, angle = 0;

ws.onmessage = (ev) => {
  const m = JSON.parse(ev.data);
  const info = document.getElementById("info");
  if (m.error) { info.textContent = m.error; return; }
  mesh = m;
  info.textContent = m.numVertices + " vertices, " + m.numIndices + " indices";
};

document.getElementById("gen").onclick = () => {
  ws.send(JSON.stringify({
    shape: document.getElementById("shape").value,
    slices: +document.getElementById("slices").value,
    stacks: +document.getElementById("stacks").value,
  }));
};

function draw() {
  requestAnimationFrame(draw);
  const ctx = document.getElementById("c").getContext("2d");
  ctx.clearRect(0, 0, 700, 500);
  if (!mesh) return;
  angle += 0.01;
  const ca = Math.cos(angle), sa = Math.sin(angle), scale = 350;
  const pts = [];
  for (let i = 0; i < mesh.positions.length; i += 3) {
    const x = mesh.positions[i] * ca + mesh.positions[i + 2] * sa;
    const z = -mesh.positions[i] * sa + mesh.positions[i + 2] * ca;
    const d = 2 / (2 + z);
    pts.push([350 + x * scale * d, 250 - mesh.positions[i + 1] * scale * d]);
  }
  ctx.strokeStyle = "#5fa8e8";
  ctx.beginPath();
  for (let i = 0; i < mesh.indices.length; i += 3) {
    const a = pts[mesh.indices[i]], b = pts[mesh.indices[i + 1]], c = pts[mesh.indices[i + 2]];
    ctx.moveTo(a[0], a[1]); ctx.lineTo(b[0], b[1]); ctx.lineTo(c[0], c[1]); ctx.lineTo(a[0], a[1]);
  }
  ctx.stroke();
}
draw();
</script>
</body>
</html>
`
