// Package render groups the output formats for diagram frames and
// reference data.
//
//   - [svg]: orbital and network frames as standalone SVG, frames as JSON
//   - [nodelink]: the hub network as a Graphviz node-link diagram
//   - [chart]: the market series as go-echarts HTML or a gonum/plot PNG
//
// Format names accepted by the CLI and HTTP server are listed in [Formats].
//
// [svg]: github.com/bensonglobal/meridian/pkg/render/svg
// [nodelink]: github.com/bensonglobal/meridian/pkg/render/nodelink
// [chart]: github.com/bensonglobal/meridian/pkg/render/chart
package render
