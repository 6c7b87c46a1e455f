package vector

import "github.com/louisbranch/cordon/internal/sim/command"

// RecordInfo describes what one record claims to contain, resolved against
// the upcode table only. Inspection never consults a population or a clock,
// so it reports claims, not whether a full decode would resolve them.
type RecordInfo struct {
	Index int

	// Code is the record's leading upcode; CommandKind is its wire name,
	// empty when the code is unregistered or selects a condition.
	Code        Upcode
	CommandKind string

	// Nope marks an explicit no-op record. Its padding is never inspected,
	// so the remaining fields stay zero.
	Nope bool

	ConditionCode  Upcode
	ConditionKind  string
	ConditionValue int

	// Targets lists the entity IDs the record references, ascending, with
	// padding and duplicates removed. Nil for kinds that carry no targets.
	Targets []int

	// Supported reports whether both the command kind and the condition
	// kind have a wire decoding. Entity resolution is not checked.
	Supported bool
}

// Inspect breaks vec into per-record reports. Unlike Decode it keeps going
// past unknown and unsupported codes, so the report covers every record of a
// well-formed vector; only a malformed length fails.
func (d *Decoder) Inspect(vec []int) ([]RecordInfo, error) {
	records, err := Slice(vec, RecordWidth)
	if err != nil {
		return nil, err
	}

	infos := make([]RecordInfo, 0, len(records))
	for i, rec := range records {
		infos = append(infos, d.inspectRecord(rec, i))
	}
	return infos, nil
}

func (d *Decoder) inspectRecord(rec []int, index int) RecordInfo {
	info := RecordInfo{Index: index, Code: Upcode(rec[0])}

	kind, isCommand := d.registry().CommandKind(info.Code)
	if isCommand {
		info.CommandKind = kind.String()
		if kind == command.KindNope {
			info.Nope = true
			info.Supported = true
			return info
		}
	}

	sub := rec[conditionStart:conditionEnd]
	info.ConditionCode = Upcode(sub[0])
	info.ConditionValue = sub[1]
	condKind, condKnown := d.registry().ConditionKind(info.ConditionCode)
	if condKnown {
		info.ConditionKind = condKind.String()
	}

	if !isCommand {
		return info
	}

	info.Targets = recordTargets(kind, rec[dataStart:dataEnd])
	info.Supported = decodableCommand(kind) && condKnown && condKind.Supported()
	return info
}

func recordTargets(kind command.Kind, data []int) []int {
	switch kind {
	case command.KindQuarantineSingleCommunity, command.KindUnquarantineSingleCommunity,
		command.KindQuarantineSinglePerson, command.KindUnquarantineSinglePerson:
		return []int{data[0]}
	case command.KindQuarantineMultipleCommunities, command.KindUnquarantineMultipleCommunities,
		command.KindQuarantineMultiplePeople, command.KindUnquarantineMultiplePeople:
		return memberIDs(data, func(int) bool { return true })
	default:
		return nil
	}
}

// decodableCommand reports whether decodeRecord can build the kind. Kinds
// outside this set are registered for recognition only.
func decodableCommand(kind command.Kind) bool {
	switch kind {
	case command.KindQuarantineSingleCommunity, command.KindUnquarantineSingleCommunity,
		command.KindQuarantineSinglePerson, command.KindUnquarantineSinglePerson,
		command.KindQuarantineMultipleCommunities, command.KindUnquarantineMultipleCommunities,
		command.KindQuarantineMultiplePeople, command.KindUnquarantineMultiplePeople:
		return true
	default:
		return false
	}
}
