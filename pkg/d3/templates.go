package d3

const pageStyle = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: #f5f5f5;
            padding: 16px;
        }
        h1 {
            font-size: 18px;
            font-weight: 600;
            margin-bottom: 12px;
            color: #333;
        }
        svg {
            background: white;
            border: 1px solid #ddd;
            border-radius: 4px;
        }
        .controls {
            display: flex;
            flex-wrap: wrap;
            gap: 12px;
            align-items: flex-end;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 12px rgba(0,0,0,0.15);
            padding: 12px 16px;
            margin-bottom: 12px;
        }
        .control-group label {
            display: block;
            font-size: 12px;
            color: #666;
            margin-bottom: 4px;
        }
        .control-group input {
            width: 80px;
            padding: 4px 6px;
            font-size: 13px;
            border: 1px solid #ddd;
            border-radius: 4px;
        }
        button {
            padding: 6px 12px;
            font-size: 12px;
            background: #f0f0f0;
            border: 1px solid #ddd;
            border-radius: 4px;
            cursor: pointer;
            color: #333;
        }
        button:hover { background: #e8e8e8; }
        button.active {
            background: #4a90d9;
            border-color: #4a90d9;
            color: white;
        }
        .node circle {
            fill: #fff;
            stroke: #333;
            stroke-width: 2;
        }
        .node text {
            font-size: 15px;
            text-anchor: middle;
            pointer-events: none;
        }
        .link {
            stroke: #999;
            stroke-width: 2;
        }
        .help-text {
            font-size: 11px;
            color: #999;
            margin-top: 8px;
        }
`

const randomTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>` + pageStyle + `
        .node { cursor: pointer; }
        .node.focused circle { stroke: #ff6b00; stroke-width: 3; }
        #reset-zoom {
            position: absolute;
            bottom: 10px;
            right: 10px;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="controls">
        <div class="control-group">
            <label for="nodeCount">Nodes</label>
            <input type="number" id="nodeCount" min="1">
        </div>
        <div class="control-group">
            <label for="probability">Skip probability</label>
            <input type="number" id="probability" min="0" max="1" step="0.05">
        </div>
        <button id="generateGraphBtn">Generate Graph</button>
    </div>
    <svg id="graph"></svg>
    <div class="help-text">Click a node to zoom onto it, click it again to zoom back out. Drag to pan, scroll to zoom.</div>
    <button id="reset-zoom">Reset Zoom</button>

    <script>
    const page = {{.PageJSON}};
    const zoomConfig = page.zoom;
    const form = page.form;

    const width = page.graph.width;
    const height = page.graph.height;
    const radius = page.graph.radius;

    let nodes = [];
    let links = [];
    let focusedId = null;

    const zoom = d3.zoom()
        .scaleExtent([zoomConfig.minScale, zoomConfig.maxScale])
        .filter(event => !event.button && !event.shiftKey)
        .on("zoom", zoomed);

    const svg = d3.select("#graph")
        .attr("width", width)
        .attr("height", height)
        .call(zoom);

    const g = svg.append("g");

    function load(data) {
        const byId = new Map();
        nodes = data.nodes.map(n => {
            const copy = { id: n.id, x: n.x, y: n.y };
            byId.set(n.id, copy);
            return copy;
        });
        links = data.links.map(l => ({
            source: byId.get(l.source),
            target: byId.get(l.target),
            line: l.line
        }));
    }

    function draw() {
        g.selectAll("*").remove();

        g.append("g")
            .selectAll("line")
            .data(links)
            .join("line")
            .attr("class", "link");

        const node = g.append("g")
            .selectAll("g")
            .data(nodes)
            .join("g")
            .attr("class", "node")
            .attr("transform", d => "translate(" + d.x + "," + d.y + ")")
            .on("click", zoomToNode);

        node.append("circle").attr("r", radius);
        node.append("text").attr("dy", ".35em").text(d => d.id);

        updateEdges();
        updateFocus();
    }

    // Lines are pulled in from both ends as the view zooms in so they stay
    // clear of the node circles.
    function updateEdges() {
        const k = d3.zoomTransform(svg.node()).k;
        const offset = zoomConfig.offset * (k - 1);

        g.selectAll("line").each(function(d) {
            const dx = d.target.x - d.source.x;
            const dy = d.target.y - d.source.y;
            const distance = Math.sqrt(dx * dx + dy * dy);
            let sx = 0, sy = 0;
            if (distance > 0) {
                sx = (dx / distance) * offset;
                sy = (dy / distance) * offset;
            }
            d3.select(this)
                .attr("x1", d.source.x + sx / 2)
                .attr("y1", d.source.y + sy / 2)
                .attr("x2", d.target.x - sx / 2)
                .attr("y2", d.target.y - sy / 2);
        });
    }

    function updateFocus() {
        g.selectAll(".node").classed("focused", d => d.id === focusedId);
    }

    function zoomed(event) {
        g.attr("transform", event.transform);
        updateEdges();
    }

    function resetZoom() {
        focusedId = null;
        updateFocus();
        svg.transition().duration(zoomConfig.durationMs).call(
            zoom.transform,
            d3.zoomIdentity.translate(0, 0).scale(1)
        );
    }

    function zoomToNode(event, d) {
        event.stopPropagation();
        if (focusedId === d.id) {
            resetZoom();
            return;
        }
        focusedId = d.id;
        updateFocus();

        const transform = d3.zoomIdentity
            .translate(width / 2, height / 2)
            .scale(zoomConfig.scale)
            .translate(-d.x, -d.y);
        svg.transition().duration(zoomConfig.durationMs).call(zoom.transform, transform);
    }

    function placeNode(existing) {
        let best = null;
        let bestGap = -1;
        for (let attempt = 0; attempt < form.maxAttempts; attempt++) {
            const candidate = {
                x: Math.random() * (width - 2 * radius) + radius,
                y: Math.random() * (height - 2 * radius) + radius
            };
            let gap = Infinity;
            for (const other of existing) {
                gap = Math.min(gap, Math.hypot(candidate.x - other.x, candidate.y - other.y));
            }
            if (gap >= 2 * radius) {
                return candidate;
            }
            if (gap > bestGap) {
                best = candidate;
                bestGap = gap;
            }
        }
        return best;
    }

    function generateGraph(count, skipProbability) {
        const data = { nodes: [], links: [] };
        for (let i = 0; i < count; i++) {
            const p = placeNode(data.nodes);
            data.nodes.push({ id: i + 1, x: p.x, y: p.y });
        }
        for (let i = 0; i < count; i++) {
            for (let j = i + 1; j < count; j++) {
                if (Math.random() >= skipProbability) {
                    data.links.push({ source: i + 1, target: j + 1 });
                }
            }
        }
        return data;
    }

    document.getElementById("nodeCount").value = form.count;
    document.getElementById("probability").value = form.skipProbability;

    document.getElementById("generateGraphBtn").onclick = function() {
        const count = +document.getElementById("nodeCount").value;
        const skipProbability = parseFloat(document.getElementById("probability").value);

        if (!(Number.isInteger(count) && count > 0) || isNaN(skipProbability) ||
            skipProbability < 0 || skipProbability > 1) {
            alert(form.invalid);
            return;
        }
        load(generateGraph(count, skipProbability));
        focusedId = null;
        svg.call(zoom.transform, d3.zoomIdentity);
        draw();
    };

    document.getElementById("reset-zoom").onclick = resetZoom;

    load(page.graph);
    draw();
    if (zoomConfig.focusId) {
        focusedId = zoomConfig.focusId;
        updateFocus();
    }
    svg.call(zoom.transform, d3.zoomIdentity
        .translate(zoomConfig.initial.x, zoomConfig.initial.y)
        .scale(zoomConfig.initial.k));
    </script>
</body>
</html>`

const builderTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>` + pageStyle + `
        .node { cursor: grab; }
        .node.pinned circle { stroke: #ff6b00; }
        .link.directed { marker-end: url(#arrowhead); }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="controls">
        <div class="control-group">
            <button id="undirectedBtn"{{if not .Directed}} class="active"{{end}}>Undirected</button>
            <button id="directedBtn"{{if .Directed}} class="active"{{end}}>Directed</button>
        </div>
        <div class="control-group">
            <label for="addNodeInput">Add node</label>
            <input type="text" id="addNodeInput">
            <button id="addNodeBtn">Add</button>
        </div>
        <div class="control-group">
            <label for="removeNodeInput">Remove node</label>
            <input type="text" id="removeNodeInput">
            <button id="removeNodeBtn">Remove</button>
        </div>
        <div class="control-group">
            <label for="addEdgeSourceInput">Add edge</label>
            <input type="text" id="addEdgeSourceInput" placeholder="source">
            <input type="text" id="addEdgeTargetInput" placeholder="target">
            <button id="addEdgeBtn">Add</button>
        </div>
    </div>
    <div id="graph"></div>
    <div class="help-text">Drag a node to move it; it is released when you let go.</div>

    <script>
    const page = {{.PageJSON}};
    const force = page.force;
    const rules = page.rules;

    const width = page.graph.width;
    const height = page.graph.height;
    const radius = page.graph.radius;

    let isDirected = page.graph.directed;
    let graphData = { nodes: [], links: [] };

    const svg = d3.select("#graph")
        .append("svg")
        .attr("width", width)
        .attr("height", height);

    svg.append("defs").append("marker")
        .attr("id", "arrowhead")
        .attr("viewBox", "0 -5 10 10")
        .attr("refX", 30)
        .attr("refY", 0)
        .attr("markerWidth", 6)
        .attr("markerHeight", 6)
        .attr("orient", "auto")
        .append("path")
        .attr("d", "M0,-5L10,0L0,5")
        .attr("fill", "#333");

    const linkLayer = svg.append("g");
    const nodeLayer = svg.append("g");

    const linkForce = d3.forceLink([])
        .id(d => d.id)
        .distance(force.linkDistance);

    const simulation = d3.forceSimulation([])
        .alphaMin(force.alphaMin)
        .velocityDecay(force.velocityDecay)
        .force("link", linkForce)
        .force("charge", d3.forceManyBody().strength(force.charge))
        .force("center", d3.forceCenter(width / 2, height / 2))
        .on("tick", ticked);

    function parseId(raw) {
        const s = String(raw).trim();
        return /^[+-]?\d+$/.test(s) ? parseInt(s, 10) : NaN;
    }

    function endpointId(end) {
        return typeof end === "object" ? end.id : end;
    }

    function hasEdge(source, target) {
        return graphData.links.some(l => endpointId(l.source) === source && endpointId(l.target) === target);
    }

    function updateGraph() {
        simulation.nodes(graphData.nodes);
        linkForce.links(graphData.links);

        linkLayer.selectAll("line")
            .data(graphData.links)
            .join("line")
            .attr("class", isDirected ? "link directed" : "link");

        const node = nodeLayer.selectAll("g.node")
            .data(graphData.nodes, d => d.id)
            .join(enter => {
                const el = enter.append("g").attr("class", "node");
                el.append("circle").attr("r", radius);
                el.append("text").attr("dy", ".35em").text(d => d.id);
                return el;
            })
            .classed("pinned", d => d.fx != null)
            .call(drag(simulation));

        simulation.alpha(1).restart();
        ticked();
    }

    function ticked() {
        linkLayer.selectAll("line")
            .attr("x1", d => d.source.x)
            .attr("y1", d => d.source.y)
            .attr("x2", d => d.target.x)
            .attr("y2", d => d.target.y);
        nodeLayer.selectAll("g.node")
            .attr("transform", d => "translate(" + d.x + "," + d.y + ")");
    }

    function setMode(directed) {
        isDirected = directed;
        document.getElementById("undirectedBtn").classList.toggle("active", !directed);
        document.getElementById("directedBtn").classList.toggle("active", directed);
        graphData.nodes = [];
        graphData.links = [];
        updateGraph();
    }

    document.getElementById("undirectedBtn").onclick = () => setMode(false);
    document.getElementById("directedBtn").onclick = () => setMode(true);

    document.getElementById("addNodeBtn").onclick = () => {
        const id = parseId(document.getElementById("addNodeInput").value);
        if (isNaN(id) || graphData.nodes.some(n => n.id === id)) {
            return;
        }
        graphData.nodes.push({ id: id });
        updateGraph();
    };

    document.getElementById("removeNodeBtn").onclick = () => {
        const id = parseId(document.getElementById("removeNodeInput").value);
        if (isNaN(id)) {
            return;
        }
        graphData.nodes = graphData.nodes.filter(n => n.id !== id);
        graphData.links = graphData.links.filter(l => endpointId(l.source) !== id && endpointId(l.target) !== id);
        updateGraph();
    };

    document.getElementById("addEdgeBtn").onclick = () => {
        const rawSource = document.getElementById("addEdgeSourceInput").value.trim();
        const rawTarget = document.getElementById("addEdgeTargetInput").value.trim();
        const source = parseId(rawSource);
        const target = parseId(rawTarget);

        if (!graphData.nodes.some(n => n.id === source)) {
            alert("Source node " + rawSource + " does not exist.");
            return;
        }
        if (!graphData.nodes.some(n => n.id === target)) {
            alert("Target node " + rawTarget + " does not exist.");
            return;
        }

        let duplicate = hasEdge(source, target);
        if (!duplicate && rules.rejectReverseUndirected && !isDirected) {
            duplicate = hasEdge(target, source);
        }
        if (duplicate) {
            alert("Edge from " + source + " to " + target + " already exists.");
            return;
        }

        graphData.links.push({ source: source, target: target });
        updateGraph();
    };

    // Drag pins the node under the pointer and reheats the simulation until
    // the gesture ends.
    function drag(simulation) {
        function dragstarted(event) {
            if (!event.active) simulation.alphaTarget(0.3).restart();
            event.subject.fx = event.subject.x;
            event.subject.fy = event.subject.y;
        }

        function dragged(event) {
            event.subject.fx = event.x;
            event.subject.fy = event.y;
        }

        function dragended(event) {
            if (!event.active) simulation.alphaTarget(0);
            event.subject.fx = null;
            event.subject.fy = null;
        }

        return d3.drag()
            .on("start", dragstarted)
            .on("drag", dragged)
            .on("end", dragended);
    }

    graphData.nodes = page.graph.nodes.map(n => Object.assign({}, n));
    graphData.links = page.graph.links.map(l => ({ source: l.source, target: l.target }));
    updateGraph();

    for (const message of page.alerts || []) {
        alert(message);
    }
    </script>
</body>
</html>`
