package service

import (
	"github.com/louisbranch/cordon/internal/services/mcp/domain"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerVectorTools binds the decoder tools. The store may be nil;
// inspect_vector never touches it and decode_vector reports it per call.
func registerVectorTools(server *mcp.Server, store storage.Store) {
	mcp.AddTool(server, domain.DecodeVectorTool(), domain.DecodeVectorHandler(store))
	mcp.AddTool(server, domain.InspectVectorTool(), domain.InspectVectorHandler())
}

// registerPopulationTools binds the population storage tools.
func registerPopulationTools(server *mcp.Server, store storage.Store) {
	mcp.AddTool(server, domain.PopulationSummaryTool(), domain.PopulationSummaryHandler(store))
	mcp.AddTool(server, domain.ListPopulationsTool(), domain.ListPopulationsHandler(store))
}
