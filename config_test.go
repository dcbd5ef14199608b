/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package propconfig

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/suparena/propconfig/codec"
	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/registry"
)

func TestConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := New()

		on, err := c.GetBool(keys.NormalizeGasConstants)
		if err != nil || !on {
			t.Fatalf("NormalizeGasConstants = %v, %v; want true", on, err)
		}
		size, err := c.GetDouble(keys.MaximumTableDirectorySizeInGB)
		if err != nil || size != 1.0 {
			t.Fatalf("MaximumTableDirectorySizeInGB = %v, %v; want 1.0", size, err)
		}
		dir, err := c.GetString(keys.AlternativeTablesDirectory)
		if err != nil || dir != "" {
			t.Fatalf("AlternativeTablesDirectory = %q, %v; want empty", dir, err)
		}
	})

	t.Run("TypedRoundTrip", func(t *testing.T) {
		c := New()

		if err := c.SetBool(keys.SaveRawTables, true); err != nil {
			t.Fatalf("SetBool: %v", err)
		}
		if err := c.SetDouble(keys.PhaseEnvelopeStartingPressurePa, 1e5); err != nil {
			t.Fatalf("SetDouble: %v", err)
		}
		if err := c.SetString(keys.AlternativeRefpropPath, "/opt/refprop"); err != nil {
			t.Fatalf("SetString: %v", err)
		}

		if v, _ := c.GetBool(keys.SaveRawTables); !v {
			t.Error("SaveRawTables not updated")
		}
		if v, _ := c.GetDouble(keys.PhaseEnvelopeStartingPressurePa); v != 1e5 {
			t.Errorf("PhaseEnvelopeStartingPressurePa = %v", v)
		}
		if v, _ := c.GetString(keys.AlternativeRefpropPath); v != "/opt/refprop" {
			t.Errorf("AlternativeRefpropPath = %q", v)
		}
	})

	t.Run("WrongType", func(t *testing.T) {
		c := New()

		err := c.SetDouble(keys.NormalizeGasConstants, 1)
		if !errors.IsTypeMismatch(err) {
			t.Fatalf("expected type mismatch, got %v", err)
		}
		if _, err := c.GetString(keys.MaximumTableDirectorySizeInGB); !errors.IsTypeMismatch(err) {
			t.Fatalf("expected type mismatch, got %v", err)
		}
		if v, _ := c.GetBool(keys.NormalizeGasConstants); !v {
			t.Error("failed write changed the value")
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		c := New()
		if _, err := c.GetBool(keys.Key(-1)); !errors.IsUnknownKey(err) {
			t.Fatalf("expected unknown key, got %v", err)
		}
	})
}

func TestConfigJSON(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		c := New()

		text, err := c.GetJSONString()
		if err != nil {
			t.Fatalf("GetJSONString: %v", err)
		}
		for _, want := range []string{`"NORMALIZE_GAS_CONSTANTS":true`, `"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB":1.0`} {
			if !strings.Contains(text, want) {
				t.Errorf("%s missing from %s", want, text)
			}
		}

		if err := c.SetJSONString(`{"NORMALIZE_GAS_CONSTANTS": false}`); err != nil {
			t.Fatalf("SetJSONString: %v", err)
		}
		if v, _ := c.GetBool(keys.NormalizeGasConstants); v {
			t.Error("NormalizeGasConstants still true")
		}
		if v, _ := c.GetDouble(keys.MaximumTableDirectorySizeInGB); v != 1.0 {
			t.Errorf("MaximumTableDirectorySizeInGB = %v, want 1.0", v)
		}

		err = c.SetJSONString(`{"NORMALIZE_GAS_CONSTANTS": "yes"}`)
		if !errors.IsTypeMismatch(err) {
			t.Fatalf("expected type mismatch, got %v", err)
		}
		if v, _ := c.GetBool(keys.NormalizeGasConstants); v {
			t.Error("rejected member changed the value")
		}
	})

	t.Run("GetJSON", func(t *testing.T) {
		c := New()
		doc, err := c.GetJSON()
		if err != nil {
			t.Fatalf("GetJSON: %v", err)
		}
		if len(doc) != keys.Count() {
			t.Fatalf("got %d members, want %d", len(doc), keys.Count())
		}
		if err := c.SetJSON(codec.Document{"SAVE_RAW_TABLES": true}); err != nil {
			t.Fatalf("SetJSON: %v", err)
		}
		if v, _ := c.GetBool(keys.SaveRawTables); !v {
			t.Error("SaveRawTables not updated")
		}
	})

	t.Run("SetJSONStringKeepsEarlierMembers", func(t *testing.T) {
		c := New()
		err := c.SetJSONString(`{"SAVE_RAW_TABLES": true, "NOT_A_KEY": 1}`)
		if !errors.IsUnknownKey(err) {
			t.Fatalf("expected unknown key, got %v", err)
		}
		if v, _ := c.GetBool(keys.SaveRawTables); !v {
			t.Error("member before the failure was rolled back")
		}
	})

	t.Run("ApplyJSONStringIsAtomic", func(t *testing.T) {
		c := New()
		before, _ := c.GetJSONString()

		err := c.ApplyJSONString(`{"SAVE_RAW_TABLES": true, "NOT_A_KEY": 1}`)
		if !errors.IsUnknownKey(err) {
			t.Fatalf("expected unknown key, got %v", err)
		}
		after, _ := c.GetJSONString()
		if before != after {
			t.Errorf("failed apply changed the configuration:\n%s\n%s", before, after)
		}

		if err := c.ApplyJSONString(`{"SAVE_RAW_TABLES": true, "MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB": 8}`); err != nil {
			t.Fatalf("ApplyJSONString: %v", err)
		}
		if v, _ := c.GetDouble(keys.MaximumTableDirectorySizeInGB); v != 8 {
			t.Errorf("MaximumTableDirectorySizeInGB = %v, want 8", v)
		}

		if err := c.ApplyJSONString(`not json`); !errors.IsParseError(err) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestConfigUpdateAndApply(t *testing.T) {
	c := New()

	err := c.Update(func(r *registry.Registry) error {
		if err := r.SetBool(keys.DontCheckPropertyLimits, true); err != nil {
			return err
		}
		return fmt.Errorf("stop")
	})
	if err == nil {
		t.Fatal("expected error from Update")
	}
	if v, _ := c.GetBool(keys.DontCheckPropertyLimits); !v {
		t.Error("Update discarded changes made before the failure")
	}

	err = c.Apply(func(r *registry.Registry) error {
		if err := r.SetBool(keys.HenrysLawToGenerateVLEGuesses, true); err != nil {
			return err
		}
		return fmt.Errorf("stop")
	})
	if err == nil {
		t.Fatal("expected error from Apply")
	}
	if v, _ := c.GetBool(keys.HenrysLawToGenerateVLEGuesses); v {
		t.Error("Apply kept changes from a failed function")
	}

	var n int
	_ = c.View(func(r *registry.Registry) error {
		n = r.Len()
		return nil
	})
	if n != keys.Count() {
		t.Errorf("View saw %d items, want %d", n, keys.Count())
	}

	c.Reset()
	if v, _ := c.GetBool(keys.DontCheckPropertyLimits); v {
		t.Error("Reset did not restore the default")
	}
}

func TestConfigConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := c.SetDouble(keys.MaximumTableDirectorySizeInGB, float64(i*j)); err != nil {
					t.Errorf("SetDouble: %v", err)
					return
				}
				if err := c.ApplyJSONString(`{"SAVE_RAW_TABLES": true}`); err != nil {
					t.Errorf("ApplyJSONString: %v", err)
					return
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := c.GetJSONString(); err != nil {
					t.Errorf("GetJSONString: %v", err)
					return
				}
				if _, err := c.GetDouble(keys.MaximumTableDirectorySizeInGB); err != nil {
					t.Errorf("GetDouble: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)

	if Default() != Default() {
		t.Fatal("Default returned different instances")
	}

	if err := SetBool(keys.CriticalSplinesEnabled, false); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if v, _ := Default().GetBool(keys.CriticalSplinesEnabled); v {
		t.Error("package-level write did not reach Default()")
	}
	if err := SetDouble(keys.PhaseEnvelopeStartingPressurePa, 250); err != nil {
		t.Fatalf("SetDouble: %v", err)
	}
	if err := SetString(keys.AlternativeRefpropHmxBncPath, "HMX.BNC"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if v, _ := GetString(keys.AlternativeRefpropHmxBncPath); v != "HMX.BNC" {
		t.Errorf("AlternativeRefpropHmxBncPath = %q", v)
	}
	if v, _ := GetDouble(keys.PhaseEnvelopeStartingPressurePa); v != 250 {
		t.Errorf("PhaseEnvelopeStartingPressurePa = %v", v)
	}

	if err := SetJSON(codec.Document{"CRITICAL_WITHIN_1UK": false}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := SetJSONString(`{"SAVE_RAW_TABLES": true}`); err != nil {
		t.Fatalf("SetJSONString: %v", err)
	}
	if err := ApplyJSONString(`{"DONT_CHECK_PROPERTY_LIMITS": true}`); err != nil {
		t.Fatalf("ApplyJSONString: %v", err)
	}
	doc, err := GetJSON()
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	for name, want := range map[string]bool{"CRITICAL_WITHIN_1UK": false, "SAVE_RAW_TABLES": true, "DONT_CHECK_PROPERTY_LIMITS": true} {
		if doc[name] != want {
			t.Errorf("%s = %v, want %v", name, doc[name], want)
		}
	}

	Reset()
	text, _ := GetJSONString()
	if !strings.Contains(text, `"CRITICAL_SPLINES_ENABLED":true`) {
		t.Errorf("Reset did not restore defaults: %s", text)
	}
	if v, _ := GetBool(keys.CriticalSplinesEnabled); !v {
		t.Error("CriticalSplinesEnabled not restored")
	}
}

func TestKeyIdentity(t *testing.T) {
	name, err := KeyToString(keys.HenrysLawToGenerateVLEGuesses)
	if err != nil || name != "HENRYS_LAW_TO_GENERATE_VLE_GUESSES" {
		t.Fatalf("KeyToString = %q, %v", name, err)
	}

	byKey, err := KeyDescription(keys.AlternativeTablesDirectory)
	if err != nil || byKey == "" {
		t.Fatalf("KeyDescription = %q, %v", byKey, err)
	}
	byName, err := KeyDescriptionByName("ALTERNATIVE_TABLES_DIRECTORY")
	if err != nil || byName != byKey {
		t.Fatalf("KeyDescriptionByName = %q, %v; want %q", byName, err, byKey)
	}

	if _, err := KeyToString(keys.Key(keys.Count())); !errors.IsUnknownKey(err) {
		t.Errorf("expected unknown key, got %v", err)
	}
	if _, err := KeyDescription(keys.Key(-3)); !errors.IsUnknownKey(err) {
		t.Errorf("expected unknown key, got %v", err)
	}
	if _, err := KeyDescriptionByName("alternative_tables_directory"); !errors.IsUnknownKey(err) {
		t.Errorf("expected unknown key, got %v", err)
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	if info.Version != Version || info.Version == "" {
		t.Errorf("Version = %q", info.Version)
	}
}
