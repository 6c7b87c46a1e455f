package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/cordon/internal/sim/document"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/louisbranch/cordon/internal/sim/simtime"
	"github.com/louisbranch/cordon/internal/sim/vector"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DecodeVectorInput represents the MCP tool input for decoding a vector.
type DecodeVectorInput struct {
	Vector       []int  `json:"vector" jsonschema:"flat command vector, length a multiple of 30"`
	PopulationID string `json:"population_id" jsonschema:"stored population to resolve entity references against"`
	SimTime      *int64 `json:"sim_time,omitempty" jsonschema:"optional simulation clock as unix seconds, defaults to the wall clock"`
}

// DecodeVectorResult represents the MCP tool output for decoding a vector.
type DecodeVectorResult struct {
	Commands int    `json:"commands" jsonschema:"number of decoded commands after no-op removal"`
	Document string `json:"document" jsonschema:"decoded command document as JSON"`
}

// InspectVectorInput represents the MCP tool input for inspecting a vector.
type InspectVectorInput struct {
	Vector []int `json:"vector" jsonschema:"flat command vector, length a multiple of 30"`
}

// VectorRecord represents one record of an inspected vector.
type VectorRecord struct {
	Index          int    `json:"index" jsonschema:"record position within the vector"`
	Code           int    `json:"code" jsonschema:"command upcode"`
	CommandKind    string `json:"command_kind,omitempty" jsonschema:"wire name of the command kind, empty when the code is unknown"`
	Nope           bool   `json:"nope,omitempty" jsonschema:"whether the record is an explicit no-op"`
	ConditionCode  int    `json:"condition_code" jsonschema:"condition upcode"`
	ConditionKind  string `json:"condition_kind,omitempty" jsonschema:"wire name of the condition kind, empty when the code is unknown"`
	ConditionValue int    `json:"condition_value" jsonschema:"first condition data element"`
	Targets        []int  `json:"targets,omitempty" jsonschema:"entity ids the record references, ascending"`
	Supported      bool   `json:"supported" jsonschema:"whether a decode of this record could succeed"`
}

// InspectVectorResult represents the MCP tool output for inspecting a vector.
type InspectVectorResult struct {
	Records []VectorRecord `json:"records" jsonschema:"per-record breakdown in input order"`
}

// DecodeVectorTool defines the MCP tool schema for decoding vectors.
func DecodeVectorTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "decode_vector",
		Description: "Decodes a command vector against a stored population into a command document",
	}
}

// InspectVectorTool defines the MCP tool schema for inspecting vectors.
func InspectVectorTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "inspect_vector",
		Description: "Reports what each record of a command vector claims to contain, without decoding it",
	}
}

// DecodeVectorHandler decodes a command vector against a stored population.
func DecodeVectorHandler(store storage.Store) mcp.ToolHandlerFor[DecodeVectorInput, DecodeVectorResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DecodeVectorInput) (*mcp.CallToolResult, DecodeVectorResult, error) {
		if store == nil {
			return nil, DecodeVectorResult{}, errNoStore
		}
		if strings.TrimSpace(input.PopulationID) == "" {
			return nil, DecodeVectorResult{}, fmt.Errorf("population_id is required")
		}

		reg, err := store.LoadRegistry(ctx, input.PopulationID)
		if err != nil {
			return nil, DecodeVectorResult{}, fmt.Errorf("load population %s: %w", input.PopulationID, err)
		}

		clock := simtime.System()
		if input.SimTime != nil {
			clock = simtime.Fixed(simtime.FromUnix(*input.SimTime))
		}

		cmds, err := (&vector.Decoder{Clock: clock}).Decode(input.Vector, reg)
		if err != nil {
			return nil, DecodeVectorResult{}, fmt.Errorf("decode vector: %w", err)
		}

		data, err := document.Marshal(cmds)
		if err != nil {
			return nil, DecodeVectorResult{}, fmt.Errorf("marshal document: %w", err)
		}

		return nil, DecodeVectorResult{Commands: len(cmds), Document: string(data)}, nil
	}
}

// InspectVectorHandler reports the per-record claims of a command vector.
// Unlike decoding it needs neither a population nor a clock, so it works on
// servers started without storage.
func InspectVectorHandler() mcp.ToolHandlerFor[InspectVectorInput, InspectVectorResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InspectVectorInput) (*mcp.CallToolResult, InspectVectorResult, error) {
		infos, err := (&vector.Decoder{}).Inspect(input.Vector)
		if err != nil {
			return nil, InspectVectorResult{}, fmt.Errorf("inspect vector: %w", err)
		}

		records := make([]VectorRecord, 0, len(infos))
		for _, info := range infos {
			records = append(records, VectorRecord{
				Index:          info.Index,
				Code:           int(info.Code),
				CommandKind:    info.CommandKind,
				Nope:           info.Nope,
				ConditionCode:  int(info.ConditionCode),
				ConditionKind:  info.ConditionKind,
				ConditionValue: info.ConditionValue,
				Targets:        info.Targets,
				Supported:      info.Supported,
			})
		}
		return nil, InspectVectorResult{Records: records}, nil
	}
}
