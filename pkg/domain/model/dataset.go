package model

// Dataset represents a named dataset archive hosted at a fixed URL
type Dataset struct {
	Name        string // Registry key, used as CLI argument
	URL         string // Fixed archive URL (tar.gz)
	Description string // One-line human description
}

// builtin is the compiled-in dataset registry. The URLs are constants: there
// is deliberately no configuration layer in front of them.
var builtin = []Dataset{
	{
		Name:        "transistors",
		URL:         "https://zenodo.org/record/2581329/files/transistor_dataset.tar.gz",
		Description: "Transistor datasheet dataset (documents, labels, gold data)",
	},
	{
		Name:        "opamps",
		URL:         "https://zenodo.org/record/2581329/files/opamp_dataset.tar.gz",
		Description: "Op-amp datasheet dataset (documents, labels, gold data)",
	},
}

// Builtin returns a copy of the compiled-in dataset registry
func Builtin() []Dataset {
	out := make([]Dataset, len(builtin))
	copy(out, builtin)
	return out
}

// Lookup returns the builtin dataset with the given name
func Lookup(name string) (Dataset, bool) {
	for _, ds := range builtin {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}
