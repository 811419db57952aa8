package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/devenum/pkg/activation"
	"github.com/joshuapare/devenum/pkg/com"
	"github.com/joshuapare/devenum/pkg/devenum"
	"github.com/joshuapare/devenum/pkg/guid"
)

func init() {
	cmd := &cobra.Command{
		Use:   "bind <category> <moniker>",
		Short: "Bind a moniker to a stand-in filter object",
		Long: `The bind command activates a moniker the way a filter graph would: the
CLSID property of a filter or codec selects the class, and the new object is
loaded from the moniker's properties. Transform objects are created inside
the wrapper filter.

No real filters are available here, so every class is served by a generic
object that records the properties it was loaded from. The command shows
what a real filter would have received.

Example:
  devenumctl bind legacy-filters Foo
  devenumctl bind audio-decoder {94297043-BD82-4DFD-B0DE-8177739C6D20} --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBind(args)
		},
	}
	rootCmd.AddCommand(cmd)
}

// bindResult describes the object a bind produced.
type bindResult struct {
	Moniker    string            `json:"moniker"`
	ClassID    string            `json:"clsid"`
	Wrapper    bool              `json:"wrapper"`
	Category   string            `json:"category,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// bindClass returns the class BindToObject will ask the activator for.
func bindClass(m *devenum.Moniker) (guid.GUID, error) {
	if pe, ok := m.Entity().(devenum.ProviderEntity); ok {
		return pe.ClassID, nil
	}
	mi, err := describe(m)
	if err != nil {
		return guid.Null, err
	}
	return guid.ParseClassID(mi.CLSID)
}

func runBind(args []string) error {
	category, err := com.ParseCategory(args[0])
	if err != nil {
		return fmt.Errorf("category %q: %w", args[0], err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close(false)

	m, err := findMoniker(s.de, category, args[1])
	if err != nil {
		return err
	}
	defer m.Release()

	clsid, err := bindClass(m)
	if err != nil {
		return fmt.Errorf("%s: %w", m.DisplayName(), err)
	}
	if err := s.activator.Register(clsid, activation.BagFilterFactory(clsid),
		activation.WithDoc("stand-in filter")); err != nil {
		return err
	}
	printVerbose("Binding %s to %s\n", m.DisplayName(), clsid)

	obj, err := m.BindToObject(nil, com.IIDBaseFilter)
	if err != nil {
		return fmt.Errorf("bind %s: %w", m.DisplayName(), err)
	}
	defer obj.Release()

	res := bindResult{Moniker: m.DisplayName(), ClassID: clsid.String()}
	switch o := obj.(type) {
	case *activation.WrapperFilter:
		wrapped, cat := o.Wrapped()
		res.Wrapper = true
		res.ClassID = wrapped.String()
		res.Category = cat.String()
	case *activation.BagFilter:
		res.Properties = make(map[string]string)
		for k, v := range o.Properties() {
			res.Properties[k] = v.String()
		}
	}

	if jsonOut {
		return printJSON(res)
	}
	printInfo("Bound %s\n", res.Moniker)
	printInfo("  Class: %s\n", res.ClassID)
	if res.Wrapper {
		printInfo("  Wrapped in category %s\n", res.Category)
	}
	keys := make([]string, 0, len(res.Properties))
	for k := range res.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printInfo("  %s: %s\n", k, res.Properties[k])
	}
	return nil
}
