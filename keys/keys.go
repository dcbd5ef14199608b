/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/value"
)

// Key identifies one configuration option.
type Key int

const (
	NormalizeGasConstants Key = iota
	CriticalWithin1uK
	CriticalSplinesEnabled
	SaveRawTables
	AlternativeTablesDirectory
	AlternativeRefpropPath
	AlternativeRefpropHmxBncPath
	RefpropDontEstimateInteractionParameters
	MaximumTableDirectorySizeInGB
	DontCheckPropertyLimits
	HenrysLawToGenerateVLEGuesses
	PhaseEnvelopeStartingPressurePa
)

// Info is the catalog record for a key. Its declared type is the type of
// Default.
type Info struct {
	Key         Key
	Name        string
	Description string
	Default     value.Value
}

// Type returns the declared type of the key.
func (i Info) Type() value.TypeTag {
	return value.TypeOf(i.Default)
}

// catalog is the single listing of every key, indexed by Key.
var catalog = [...]Info{
	NormalizeGasConstants: {
		Name:        "NORMALIZE_GAS_CONSTANTS",
		Default:     value.Bool(true),
		Description: "If true, for mixtures, the molar gas constant (R) will be set to the CODATA value",
	},
	CriticalWithin1uK: {
		Name:        "CRITICAL_WITHIN_1UK",
		Default:     value.Bool(true),
		Description: "If true, any temperature within 1 uK of the critical temperature will be considered to be AT the critical point",
	},
	CriticalSplinesEnabled: {
		Name:        "CRITICAL_SPLINES_ENABLED",
		Default:     value.Bool(true),
		Description: "If true, the critical splines will be used in the near-vicinity of the critical point",
	},
	SaveRawTables: {
		Name:        "SAVE_RAW_TABLES",
		Default:     value.Bool(false),
		Description: "If true, the raw, uncompressed tables will also be written to file",
	},
	AlternativeTablesDirectory: {
		Name:        "ALTERNATIVE_TABLES_DIRECTORY",
		Default:     value.String(""),
		Description: "If provided, this path will be the root directory for the tabular data.  Otherwise, ${HOME}/.CoolProp/Tables is used",
	},
	AlternativeRefpropPath: {
		Name:        "ALTERNATIVE_REFPROP_PATH",
		Default:     value.String(""),
		Description: "An alternative path to be provided to the directory that contains REFPROP's fluids and mixtures directories.  If provided, the SETPATH function will be called with this directory prior to calling any REFPROP functions.",
	},
	AlternativeRefpropHmxBncPath: {
		Name:        "ALTERNATIVE_REFPROP_HMX_BNC_PATH",
		Default:     value.String(""),
		Description: "An alternative path to the HMX.BNC file.  If provided, it will be passed into REFPROP's SETUP or SETMIX routines",
	},
	RefpropDontEstimateInteractionParameters: {
		Name:        "REFPROP_DONT_ESTIMATE_INTERACTION_PARAMETERS",
		Default:     value.Bool(false),
		Description: "If true, if the binary interaction parameters in REFPROP are estimated, throw an error rather than silently continuing",
	},
	MaximumTableDirectorySizeInGB: {
		Name:        "MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB",
		Default:     value.Double(1.0),
		Description: "The maximum allowed size of the directory that is used to store tabular data",
	},
	DontCheckPropertyLimits: {
		Name:        "DONT_CHECK_PROPERTY_LIMITS",
		Default:     value.Bool(false),
		Description: "If true, when possible, CoolProp will skip checking whether values are inside the property limits",
	},
	HenrysLawToGenerateVLEGuesses: {
		Name:        "HENRYS_LAW_TO_GENERATE_VLE_GUESSES",
		Default:     value.Bool(false),
		Description: "If true, when doing water-based mixture dewpoint calculations, use Henry's Law to generate guesses for liquid-phase composition",
	},
	PhaseEnvelopeStartingPressurePa: {
		Name:        "PHASE_ENVELOPE_STARTING_PRESSURE_PA",
		Default:     value.Double(100.0),
		Description: "Starting pressure [Pa] for phase envelope construction",
	},
}

var byName = make(map[string]Key, len(catalog))

func init() {
	for i := range catalog {
		catalog[i].Key = Key(i)
		byName[catalog[i].Name] = Key(i)
	}
}

// Valid reports whether k belongs to the catalog.
func (k Key) Valid() bool {
	return k >= 0 && int(k) < len(catalog)
}

// String returns the catalog name, or Key(n) for values outside the catalog.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return catalog[k].Name
}

// Metadata returns the catalog record for k.
func Metadata(k Key) (Info, error) {
	if !k.Valid() {
		return Info{}, errors.NewUnknownKeyError(k.String())
	}
	return catalog[k], nil
}

// Name returns the string name of k.
func Name(k Key) (string, error) {
	info, err := Metadata(k)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// Description returns the human-readable description of k.
func Description(k Key) (string, error) {
	info, err := Metadata(k)
	if err != nil {
		return "", err
	}
	return info.Description, nil
}

// DescriptionByName returns the description of the key with the given name.
func DescriptionByName(name string) (string, error) {
	k, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return catalog[k].Description, nil
}

// Default returns the compile-time default of k.
func Default(k Key) (value.Value, error) {
	info, err := Metadata(k)
	if err != nil {
		return nil, err
	}
	return info.Default, nil
}

// TypeOf returns the declared type of k.
func TypeOf(k Key) (value.TypeTag, error) {
	info, err := Metadata(k)
	if err != nil {
		return value.TypeUndefined, err
	}
	return info.Type(), nil
}

// Lookup resolves an exact, case-sensitive key name.
func Lookup(name string) (Key, error) {
	k, ok := byName[name]
	if !ok {
		return 0, errors.NewUnknownKeyError(name)
	}
	return k, nil
}

// All returns every key in catalog order.
func All() []Key {
	out := make([]Key, len(catalog))
	for i := range catalog {
		out[i] = Key(i)
	}
	return out
}

// Count returns the number of catalog keys.
func Count() int {
	return len(catalog)
}
