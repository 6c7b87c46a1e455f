package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// errNoStore signals tool calls that need population storage when the server
// was started without a store path.
var errNoStore = errors.New("population storage is not configured")

// defaultPageSize bounds list_populations when the caller does not pick a
// page size.
const defaultPageSize = 20

// PopulationSummaryInput represents the MCP tool input for describing a
// stored population.
type PopulationSummaryInput struct {
	PopulationID string `json:"population_id" jsonschema:"population identifier"`
}

// IDRange reports the lowest and highest entity ID of one kind.
type IDRange struct {
	Min int `json:"min" jsonschema:"lowest id"`
	Max int `json:"max" jsonschema:"highest id"`
}

// PopulationSummaryResult represents the MCP tool output for describing a
// stored population. The ID range fields are filled by population_summary
// only; list_populations reports counts without opening each snapshot.
type PopulationSummaryResult struct {
	ID           string   `json:"id" jsonschema:"population identifier"`
	Name         string   `json:"name" jsonschema:"population name"`
	Seed         int64    `json:"seed" jsonschema:"generation seed"`
	People       int      `json:"people" jsonschema:"number of people"`
	Families     int      `json:"families" jsonschema:"number of families"`
	Communities  int      `json:"communities" jsonschema:"number of communities"`
	CreatedAt    int64    `json:"created_at" jsonschema:"creation time as unix seconds"`
	PersonIDs    *IDRange `json:"person_ids,omitempty" jsonschema:"person id range"`
	FamilyIDs    *IDRange `json:"family_ids,omitempty" jsonschema:"family id range"`
	CommunityIDs *IDRange `json:"community_ids,omitempty" jsonschema:"community id range"`
}

// ListPopulationsInput represents the MCP tool input for listing stored
// populations.
type ListPopulationsInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum populations to return, defaults to 20"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// ListPopulationsResult represents the MCP tool output for listing stored
// populations.
type ListPopulationsResult struct {
	Populations   []PopulationSummaryResult `json:"populations" jsonschema:"stored populations in id order"`
	NextPageToken string                    `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// PopulationSummaryTool defines the MCP tool schema for describing a stored
// population.
func PopulationSummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "population_summary",
		Description: "Describes a stored population",
	}
}

// ListPopulationsTool defines the MCP tool schema for listing stored
// populations.
func ListPopulationsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_populations",
		Description: "Lists stored populations a page at a time",
	}
}

// PopulationSummaryHandler describes one stored population, including the
// ID range of each entity kind.
func PopulationSummaryHandler(store storage.Store) mcp.ToolHandlerFor[PopulationSummaryInput, PopulationSummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PopulationSummaryInput) (*mcp.CallToolResult, PopulationSummaryResult, error) {
		if store == nil {
			return nil, PopulationSummaryResult{}, errNoStore
		}

		pop, err := store.GetPopulation(ctx, input.PopulationID)
		if err != nil {
			return nil, PopulationSummaryResult{}, fmt.Errorf("get population %s: %w", input.PopulationID, err)
		}
		reg, err := store.LoadRegistry(ctx, input.PopulationID)
		if err != nil {
			return nil, PopulationSummaryResult{}, fmt.Errorf("load population %s: %w", input.PopulationID, err)
		}

		summary := populationSummary(pop)
		summary.PersonIDs = idRange(reg.PersonIDs())
		summary.FamilyIDs = idRange(reg.FamilyIDs())
		summary.CommunityIDs = idRange(reg.CommunityIDs())
		return nil, summary, nil
	}
}

// ListPopulationsHandler lists stored populations a page at a time.
func ListPopulationsHandler(store storage.Store) mcp.ToolHandlerFor[ListPopulationsInput, ListPopulationsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListPopulationsInput) (*mcp.CallToolResult, ListPopulationsResult, error) {
		if store == nil {
			return nil, ListPopulationsResult{}, errNoStore
		}

		pageSize := input.PageSize
		if pageSize <= 0 {
			pageSize = defaultPageSize
		}

		page, err := store.ListPopulations(ctx, pageSize, input.PageToken)
		if err != nil {
			return nil, ListPopulationsResult{}, fmt.Errorf("list populations: %w", err)
		}

		populations := make([]PopulationSummaryResult, 0, len(page.Populations))
		for _, pop := range page.Populations {
			populations = append(populations, populationSummary(pop))
		}
		return nil, ListPopulationsResult{Populations: populations, NextPageToken: page.NextPageToken}, nil
	}
}

func populationSummary(pop storage.Population) PopulationSummaryResult {
	return PopulationSummaryResult{
		ID:          pop.ID,
		Name:        pop.Name,
		Seed:        pop.Seed,
		People:      pop.NumPeople,
		Families:    pop.NumFamilies,
		Communities: pop.NumCommunities,
		CreatedAt:   pop.CreatedAt.Unix(),
	}
}

// idRange converts an ascending ID list into its bounds. Nil when empty.
func idRange(ids []int) *IDRange {
	if len(ids) == 0 {
		return nil
	}
	return &IDRange{Min: ids[0], Max: ids[len(ids)-1]}
}
