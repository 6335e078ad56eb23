package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/component"
)

// ComponentInfo names one registered component.
type ComponentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ComponentList is the output of the components command.
type ComponentList struct {
	Components []ComponentInfo `json:"components"`
}

// RenderText prints one component per line.
func (l ComponentList) RenderText(w io.Writer) error {
	for _, c := range l.Components {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", c.Name, c.Description); err != nil {
			return err
		}
	}
	return nil
}

// NewComponentsCommand creates the components command.
func NewComponentsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "components",
		Short:         "List the components a scenario stage can use",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			regs := component.Default().List()
			list := ComponentList{Components: make([]ComponentInfo, len(regs))}
			for i, reg := range regs {
				list.Components[i] = ComponentInfo{Name: reg.Name, Description: reg.Description}
			}
			return newFormatter(rootOpts, cmd).Success(list)
		},
	}
}
