package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/dictforge/internal/schema"
	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	var (
		at, dt, role      string
		alias, desc       string
		guess             bool
		interactive       bool
		constraintPairs   []string
		cleaningPairs     []string
		governancePairs   []string
		dbPairs           []string
		visualizationPair []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Define a new variable",
		Long: `Define a new variable and commit it to the dictionary.

Types may be set explicitly, guessed from the variable name with
--guess, or collected interactively with --interactive, where the form
only offers the fields that are coherent with the chosen types.`,
		Example: `  # Heuristic definition from the name alone
  dictforge add customer_id --guess

  # Explicit definition with constraints
  dictforge add customer_age --at continuous --dt float64 \
      --constraint min_value=18 --constraint max_value=99

  # Interactive form
  dictforge add risk_band --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			var b *variable.Builder
			switch {
			case interactive:
				b, err = interactiveBuilder(cmdCtx, name)
				if err != nil {
					return err
				}
			case guess:
				b = variable.FromGuess(name)
			default:
				b = variable.NewBuilder(name,
					taxonomy.AnalyticalType(at),
					taxonomy.DataType(dt),
					taxonomy.Role(role))
			}
			b.Identity(alias, desc)

			sections := map[string][]string{
				variable.SectionConstraints:     constraintPairs,
				variable.SectionCleaning:        cleaningPairs,
				variable.SectionGovernance:      governancePairs,
				variable.SectionDatabaseMapping: dbPairs,
				variable.SectionVisualization:   visualizationPair,
			}
			for section, pairs := range sections {
				fields, err := parseAssignments(pairs)
				if err != nil {
					return fmt.Errorf("--%s: %w", strings.ReplaceAll(section, "_", "-"), err)
				}
				b.SetSection(section, fields)
			}

			v, err := b.Build()
			if err != nil {
				return err
			}

			cmdCtx.Session.SetBuffer(v)
			if err := cmdCtx.Session.Commit(); err != nil {
				return err
			}
			cmdCtx.Session.TakePending(name)
			if err := cmdCtx.SaveDictionary(); err != nil {
				return err
			}

			grade, score := variable.QualityGrade(v)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Committed %q (%s/%s, quality %s %d/100)\n",
				v.Name, v.AnalyticalType, v.DataType, grade, score)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", string(taxonomy.Continuous), "Analytical type")
	cmd.Flags().StringVar(&dt, "dt", string(taxonomy.Float64), "Data type")
	cmd.Flags().StringVar(&role, "role", string(taxonomy.RoleFeature), "Functional role")
	cmd.Flags().StringVar(&alias, "alias", "", "Business alias")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().BoolVar(&guess, "guess", false, "Guess types from the variable name")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect metadata interactively")
	cmd.Flags().StringArrayVar(&constraintPairs, "constraint", nil, "Constraint field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&cleaningPairs, "cleaning", nil, "Cleaning field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&governancePairs, "governance", nil, "Governance field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&dbPairs, "db", nil, "Database mapping field (key=value, repeatable)")
	cmd.Flags().StringArrayVar(&visualizationPair, "viz", nil, "Visualization field (key=value, repeatable)")

	return cmd
}

// interactiveBuilder walks the master schema and prompts only for the
// fields the visibility predicate admits for the chosen types.
func interactiveBuilder(cmdCtx *CommandContext, name string) (*variable.Builder, error) {
	s, err := cmdCtx.Schema()
	if err != nil {
		return nil, err
	}

	seed := taxonomy.GuessMetadata(name)

	at, err := selectString("Analytical type:", analyticalTypeOptions(), string(seed.AnalyticalType))
	if err != nil {
		return nil, err
	}
	analytical := taxonomy.AnalyticalType(at)

	dtOptions := make([]string, 0, 4)
	for _, d := range taxonomy.AllowedDataTypes(analytical) {
		dtOptions = append(dtOptions, string(d))
	}
	dt, err := selectString("Data type:", dtOptions, string(seed.DataType))
	if err != nil {
		return nil, err
	}
	dataType := taxonomy.DataType(dt)

	roleOptions := make([]string, 0, 6)
	for _, r := range taxonomy.AllowedRoles(analytical, dataType) {
		roleOptions = append(roleOptions, string(r))
	}
	role, err := selectString("Role:", roleOptions, string(seed.Role))
	if err != nil {
		return nil, err
	}

	b := variable.NewBuilder(name, analytical, dataType, taxonomy.Role(role))

	for _, section := range s.Sections() {
		if section.Name == variable.SectionVisualization {
			continue
		}
		fields := map[string]any{}
		for _, def := range section.Fields {
			if !taxonomy.IsFieldVisible(def.Name, analytical, dataType) {
				continue
			}
			val, err := promptField(def, analytical)
			if err != nil {
				return nil, err
			}
			if val != nil {
				fields[def.Name] = val
			}
		}
		b.SetSection(section.Name, fields)
	}

	if variable.IsCategoricalContext(analytical, dataType) {
		labels, mapping, err := promptCategoricalRows(analytical)
		if err != nil {
			return nil, err
		}
		catFields := map[string]any{"allowed_values": labels}
		if len(mapping) > 0 {
			catFields["ordinal_mapping"] = mapping
		}
		b.SetSection(variable.SectionConstraints, catFields)
	}

	return b, nil
}

func analyticalTypeOptions() []string {
	all := taxonomy.AllAnalyticalTypes()
	out := make([]string, len(all))
	for i, at := range all {
		out[i] = string(at)
	}
	return out
}

func selectString(message string, options []string, preferred string) (string, error) {
	def := options[0]
	for _, opt := range options {
		if opt == preferred {
			def = preferred
			break
		}
	}
	var answer string
	prompt := &survey.Select{Message: message, Options: options, Default: def}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// promptField renders one schema field as a survey prompt. An empty
// answer means "leave unset" and returns nil.
func promptField(def schema.FieldDef, at taxonomy.AnalyticalType) (any, error) {
	label := taxonomy.DynamicLabel(def.Name, at)

	switch def.Kind {
	case schema.KindBoolean:
		var answer bool
		if b, ok := def.Default.(bool); ok {
			answer = b
		}
		if err := survey.AskOne(&survey.Confirm{Message: label + "?", Default: answer}, &answer); err != nil {
			return nil, err
		}
		return answer, nil

	case schema.KindEnum:
		options := append([]string{"(skip)"}, def.Options...)
		var answer string
		if err := survey.AskOne(&survey.Select{Message: label + ":", Options: options}, &answer); err != nil {
			return nil, err
		}
		if answer == "(skip)" {
			return nil, nil
		}
		return answer, nil

	case schema.KindMultiSelect:
		if len(def.Options) == 0 {
			return promptFreeList(label)
		}
		var answers []string
		if err := survey.AskOne(&survey.MultiSelect{Message: label + ":", Options: def.Options}, &answers); err != nil {
			return nil, err
		}
		if len(answers) == 0 {
			return nil, nil
		}
		return toAnyList(answers), nil

	case schema.KindNumber:
		var raw string
		if err := survey.AskOne(&survey.Input{Message: label + " (blank to skip):"}, &raw); err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", def.Name, raw)
		}
		return f, nil

	default:
		var raw string
		if err := survey.AskOne(&survey.Input{Message: label + " (blank to skip):"}, &raw); err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	}
}

func promptFreeList(label string) (any, error) {
	var raw string
	if err := survey.AskOne(&survey.Input{Message: label + " (comma-separated, blank to skip):"}, &raw); err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var list []any
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list, nil
}

// promptCategoricalRows collects the label list for a categorical
// context, and ranks when the variable is ordinal.
func promptCategoricalRows(at taxonomy.AnalyticalType) ([]any, map[string]int, error) {
	message := "Category labels (comma-separated):"
	if at == taxonomy.Binary {
		message = "Binary labels, exactly two (comma-separated):"
	}
	var raw string
	if err := survey.AskOne(&survey.Input{Message: message}, &raw, survey.WithValidator(survey.Required)); err != nil {
		return nil, nil, err
	}

	var labels []any
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}

	if at != taxonomy.Ordinal {
		return labels, nil, nil
	}

	mapping := make(map[string]int, len(labels))
	for i, label := range labels {
		name := label.(string)
		var rankRaw string
		prompt := &survey.Input{
			Message: fmt.Sprintf("Rank for %q:", name),
			Default: strconv.Itoa(i + 1),
		}
		if err := survey.AskOne(prompt, &rankRaw); err != nil {
			return nil, nil, err
		}
		rank, err := strconv.Atoi(strings.TrimSpace(rankRaw))
		if err != nil {
			return nil, nil, fmt.Errorf("rank for %q: %q is not an integer", name, rankRaw)
		}
		mapping[name] = rank
	}
	return labels, mapping, nil
}

func toAnyList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
