package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jharder01/Huntarr.io/internal/api"
	"github.com/jharder01/Huntarr.io/internal/models"
	"github.com/jharder01/Huntarr.io/internal/settings"
)

var (
	settingsFromFile string
	settingsRemove   []int
	settingsReveal   bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and edit server settings",
	Long: `Show and edit the settings sections stored on the server.

Assignments are written field=value. Instance fields of apps with several
instances are addressed as instances.N.field (N counts from 0); assigning
to the index after the last instance adds one.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Show one section, or list all sections",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsShow,
}

var settingsDiffCmd = &cobra.Command{
	Use:   "diff <section> [field=value...]",
	Short: "Show what assignments would change without saving",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsEdit(cmd, args, editDiff)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <section> field=value...",
	Short: "Change fields of a section and save it",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsEdit(cmd, args, editSet)
	},
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save <section> --from file.yaml",
	Short: "Save a section from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsEdit(cmd, args, editFile)
	},
}

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsReveal, "reveal", false, "print API keys in clear text")
	settingsDiffCmd.Flags().IntSliceVar(&settingsRemove, "remove-instance", nil, "remove the instance at this index")
	settingsSetCmd.Flags().IntSliceVar(&settingsRemove, "remove-instance", nil, "remove the instance at this index")
	settingsSaveCmd.Flags().StringVarP(&settingsFromFile, "from", "f", "", "YAML file with the section's fields")
	_ = settingsSaveCmd.MarkFlagRequired("from")

	settingsCmd.AddCommand(settingsDiffCmd)
	settingsCmd.AddCommand(settingsSaveCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// loadTracker fetches every section from the server into a new tracker.
func loadTracker(ctx context.Context, client *api.Client) (*settings.Tracker, error) {
	all, err := client.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	tracker := settings.NewTracker()
	tracker.Load(all)
	return tracker, nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, schema := range settings.Schemas() {
			fmt.Printf("  %-10s %s\n", schema.Key, styleHint.Render(schema.Label))
		}
		return nil
	}

	key := models.SectionKey(strings.ToLower(args[0]))
	if _, err := settings.SchemaFor(key); err != nil {
		return err
	}

	_, client, err := setupHeadless()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	cfg, err := client.Section(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load %s settings: %w", key, err)
	}
	tracker := settings.NewTracker()
	if err := tracker.SetBaseline(key, cfg); err != nil {
		return err
	}
	form, err := tracker.Form(key)
	if err != nil {
		return err
	}
	printForm(form, settingsReveal)
	return nil
}

func printForm(form *settings.Form, reveal bool) {
	schema := form.Schema()
	fmt.Println(styleBrand.Render(schema.Label))
	for _, field := range schema.Fields {
		value := form.Text(field.Name)
		if field.Kind == settings.KindSecret && !reveal {
			value = maskSecret(value)
		}
		printField(field.Name, value)
	}
	if schema.Instances != settings.MultiInstance {
		return
	}
	for i, inst := range form.Instances() {
		key := inst.APIKey
		if !reveal {
			key = maskSecret(key)
		}
		state := styleSuccess.Render("enabled")
		if !inst.Enabled {
			state = styleHint.Render("disabled")
		}
		fmt.Printf("\n  %s %s %s\n", styleHeader.Render(fmt.Sprintf("instances.%d", i)), inst.Name, state)
		printField("api_url", inst.URL)
		printField("api_key", key)
	}
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "********"
}

type editMode int

const (
	editDiff editMode = iota
	editSet
	editFile
)

func runSettingsEdit(cmd *cobra.Command, args []string, mode editMode) error {
	key := models.SectionKey(strings.ToLower(args[0]))
	if _, err := settings.SchemaFor(key); err != nil {
		return err
	}

	var assignments []assignment
	for _, arg := range args[1:] {
		a, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		assignments = append(assignments, a)
	}
	if mode == editFile {
		data, err := os.ReadFile(settingsFromFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", settingsFromFile, err)
		}
		fromFile, err := yamlAssignments(data)
		if err != nil {
			return fmt.Errorf("%s: %w", settingsFromFile, err)
		}
		assignments = append(assignments, fromFile...)
	}

	_, client, err := setupHeadless()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	tracker, err := loadTracker(ctx, client)
	if err != nil {
		return err
	}
	if err := tracker.SetActive(key); err != nil {
		return err
	}

	// Highest index first so earlier removals do not shift later ones.
	if mode != editFile {
		removals := append([]int(nil), settingsRemove...)
		sort.Sort(sort.Reverse(sort.IntSlice(removals)))
		for _, i := range removals {
			if err := tracker.Edit(func(f *settings.Form) error { return f.RemoveInstance(i) }); err != nil {
				return err
			}
		}
	}
	for _, a := range assignments {
		if err := tracker.Edit(a.apply); err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
	}

	changes, err := tracker.Diff(key)
	if err != nil {
		return err
	}
	if !tracker.HasFormChanges(key) {
		fmt.Println(styleHint.Render("No changes."))
		return nil
	}
	printChanges(changes)
	if mode == editDiff {
		return nil
	}

	result, err := tracker.Save(ctx, key, client)
	if err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("✓ %s settings saved.", key)))
	if result.ReloadRequired {
		fmt.Println(styleWarning.Render("Server access settings changed; open dashboards reload everything."))
	}
	return nil
}

func printChanges(changes []settings.FieldChange) {
	for _, c := range changes {
		fmt.Printf("  %s %s %s %s\n",
			styleLabel.Render(c.Field+":"),
			styleError.Render(orDefault(c.Old, "(empty)")),
			styleHint.Render("→"),
			styleSuccess.Render(orDefault(c.New, "(empty)")))
	}
}

// assignment is one field=value edit. instance is -1 for section fields.
type assignment struct {
	field    string
	instance int
	value    string
}

func (a assignment) String() string {
	if a.instance >= 0 {
		return fmt.Sprintf("%s.%d.%s", settings.InstancesKey, a.instance, a.field)
	}
	return a.field
}

func (a assignment) apply(f *settings.Form) error {
	if a.instance < 0 {
		return f.Set(a.field, a.value)
	}
	if a.instance == len(f.Instances()) {
		if err := f.AddInstance(); err != nil {
			return err
		}
	}
	return f.SetInstanceField(a.instance, a.field, a.value)
}

func parseAssignment(arg string) (assignment, error) {
	name, value, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return assignment{}, fmt.Errorf("expected field=value, got %q", arg)
	}

	prefix := settings.InstancesKey + "."
	if !strings.HasPrefix(name, prefix) {
		return assignment{field: name, instance: -1, value: value}, nil
	}
	index, field, ok := strings.Cut(strings.TrimPrefix(name, prefix), ".")
	i, err := strconv.Atoi(index)
	if !ok || err != nil || i < 0 || field == "" {
		return assignment{}, fmt.Errorf("expected instances.N.field, got %q", name)
	}
	return assignment{field: field, instance: i, value: value}, nil
}

// yamlAssignments turns a section document into assignments. Scalars map
// to section fields and the instances list to instances.N.field.
func yamlAssignments(data []byte) ([]assignment, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []assignment
	for _, name := range names {
		v := doc[name]
		if name != settings.InstancesKey {
			out = append(out, assignment{field: name, instance: -1, value: fmt.Sprint(v)})
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%s must be a list", settings.InstancesKey)
		}
		for i, item := range list {
			attrs, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s.%d must be a mapping", settings.InstancesKey, i)
			}
			for _, attr := range []string{"name", "api_url", "api_key", "enabled"} {
				if av, ok := attrs[attr]; ok {
					out = append(out, assignment{field: attr, instance: i, value: fmt.Sprint(av)})
				}
			}
		}
	}
	return out, nil
}
