package main

import (
	"encoding/json"
	"hash/fnv"
	"os"

	"github.com/bindgraph/dicore"
	"github.com/bindgraph/dicore/binding"
	"github.com/bindgraph/dicore/diag"
)

// fixture is the on-disk JSON shape dicore-inspect loads: a stand-in for
// whatever a compile-time code generator would emit. Constructors have no
// real implementation to invoke here, so fn identities are derived by
// hashing their name — normalization never calls through a CreateFunc
// anyway, only compares identities.
type fixture struct {
	TopFun  string           `json:"topFun"`
	Exposed []string         `json:"exposed"`
	Entries []fixtureEntry   `json:"bindings"`
}

type fixtureEntry struct {
	Type  string   `json:"type"`
	Kind  string   `json:"kind"`
	Fn    string   `json:"fn"`
	CType string   `json:"cType"`
	Deps  []string `json:"deps"`
}

func loadFixture(path string) (entries []binding.Entry, exposed []dicore.TypeID, topFunID dicore.TypeID, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, dicore.TypeID{}, diag.New(diag.PhaseFixture, diag.KindUnreadableFixture).
			Detail("reading %s", path).Cause(err).Build()
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, dicore.TypeID{}, diag.New(diag.PhaseFixture, diag.KindUnparsableFixture).
			Detail("parsing %s", path).Cause(err).Build()
	}

	for _, e := range f.Exposed {
		exposed = append(exposed, dicore.NewTypeID(e))
	}
	if f.TopFun != "" {
		topFunID = dicore.NewTypeID(f.TopFun)
	}

	for _, e := range f.Entries {
		entry, err := e.toEntry()
		if err != nil {
			return nil, nil, dicore.TypeID{}, err
		}
		entries = append(entries, entry)
	}
	return entries, exposed, topFunID, nil
}

func (e fixtureEntry) toEntry() (binding.Entry, error) {
	typeID := dicore.NewTypeID(e.Type)
	create := binding.CreateFunc{ID: funcID(e.Fn)}
	deps := make(dicore.DependencyList, len(e.Deps))
	for i, d := range e.Deps {
		deps[i] = dicore.NewTypeID(d)
	}

	switch e.Kind {
	case "ConstructedObject":
		return binding.NewConstructedObject(typeID, e.Fn), nil
	case "NeedsAllocation":
		return binding.NewNeedsAllocation(typeID, create, deps), nil
	case "NeedsNoAllocation":
		return binding.NewNeedsNoAllocation(typeID, create, deps), nil
	case "Compressed":
		return binding.NewCompressed(typeID, dicore.NewTypeID(e.CType), create), nil
	case "MultibindingConstructed":
		return binding.NewMultibindingConstructed(typeID, e.Fn), nil
	case "MultibindingNeedsAllocation":
		return binding.NewMultibindingNeedsAllocation(typeID, create, deps), nil
	case "MultibindingNeedsNoAllocation":
		return binding.NewMultibindingNeedsNoAllocation(typeID, create, deps), nil
	case "MultibindingVectorCreator":
		return binding.NewMultibindingVectorCreator(typeID, create), nil
	default:
		return binding.Entry{}, diag.New(diag.PhaseFixture, diag.KindUnsupportedEntryKind).
			TypeID(typeID).
			Detail("kind %q (lazy components aren't representable in a JSON fixture)", e.Kind).
			Build()
	}
}

func funcID(name string) binding.FuncID {
	h := fnv.New64a()
	h.Write([]byte(name))
	return binding.FuncID(h.Sum64())
}
