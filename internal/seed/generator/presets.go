package generator

// Preset defines a named configuration for population generation.
type Preset string

const (
	// PresetVillage creates a small population for quick demos.
	PresetVillage Preset = "village"

	// PresetTown creates a mid-sized population with every community type.
	PresetTown Preset = "town"

	// PresetCity creates a large population for load testing.
	PresetCity Preset = "city"
)

// PresetConfig holds the generation parameters for a preset.
type PresetConfig struct {
	// Number of people to generate
	People int

	// People per family (min, max)
	FamilySizeMin int
	FamilySizeMax int

	// Community types to build, in generation order
	CommunityTypes []string

	// Members per community (min, max)
	CommunitySizeMin int
	CommunitySizeMax int
}

// GetPresetConfig returns the configuration for a preset.
func GetPresetConfig(preset Preset) PresetConfig {
	switch preset {
	case PresetVillage:
		return PresetConfig{
			People:           24,
			FamilySizeMin:    1,
			FamilySizeMax:    5,
			CommunityTypes:   []string{"school", "workplace"},
			CommunitySizeMin: 4,
			CommunitySizeMax: 8,
		}

	case PresetTown:
		return PresetConfig{
			People:           150,
			FamilySizeMin:    1,
			FamilySizeMax:    6,
			CommunityTypes:   []string{"school", "workplace", "gym"},
			CommunitySizeMin: 10,
			CommunitySizeMax: 25,
		}

	case PresetCity:
		return PresetConfig{
			People:           2000,
			FamilySizeMin:    1,
			FamilySizeMax:    6,
			CommunityTypes:   []string{"school", "workplace", "gym"},
			CommunitySizeMin: 20,
			CommunitySizeMax: 60,
		}

	default:
		// Default to village preset
		return GetPresetConfig(PresetVillage)
	}
}
