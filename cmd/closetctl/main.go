// Command closetctl loads a closet definition file and queries the
// compiled diagram from the shell: describe its families, report its
// structural counts, complete an outfit from a partial selection, or
// round-trip a ZDD through the s-expression codec.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zzenonn/closet"
)

var (
	cfgFile string
	repFlag string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "closetctl",
		Short: "Inspect and query closet configuration diagrams",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "closet definition file (YAML or JSON)")
	root.PersistentFlags().StringVar(&repFlag, "representation", "zdd", "diagram representation: zdd or bdd")
	root.AddCommand(
		newDescribeCmd(),
		newStatsCmd(),
		newQueryCmd(),
		newSummarizeCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
	)
	return root
}

// definitionFile is the on-disk shape of a closet definition: a family to
// item-list map plus exclusion/inclusion pairs, read through viper so
// either YAML or JSON works unmodified.
type definitionFile struct {
	Families   map[string][]string `mapstructure:"families"`
	Exclusions [][]string          `mapstructure:"exclusions"`
	Inclusions [][]string          `mapstructure:"inclusions"`
}

func loadDefinition() (definitionFile, error) {
	var def definitionFile
	if cfgFile == "" {
		return def, fmt.Errorf("--config is required")
	}
	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return def, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&def); err != nil {
		return def, fmt.Errorf("parse config: %w", err)
	}
	return def, nil
}

func representation() (closet.Representation, error) {
	switch repFlag {
	case "", "zdd":
		return closet.RepresentationZDD, nil
	case "bdd":
		return closet.RepresentationBDD, nil
	default:
		return 0, fmt.Errorf("unknown representation %q, want zdd or bdd", repFlag)
	}
}

func loadCloset() (*closet.Closet, error) {
	def, err := loadDefinition()
	if err != nil {
		return nil, err
	}
	rep, err := representation()
	if err != nil {
		return nil, err
	}
	b := closet.NewClosetBuilder(closet.WithRepresentation(rep))
	for fam, items := range def.Families {
		for _, it := range items {
			b.AddItem(closet.Family(fam), closet.Item(it))
		}
	}
	for _, pair := range def.Exclusions {
		if len(pair) != 2 {
			return nil, fmt.Errorf("exclusion rule %v: want exactly 2 items", pair)
		}
		b.AddExclusionRule(closet.Item(pair[0]), closet.Item(pair[1]))
	}
	for _, pair := range def.Inclusions {
		if len(pair) != 2 {
			return nil, fmt.Errorf("inclusion rule %v: want exactly 2 items", pair)
		}
		b.AddInclusionRule(closet.Item(pair[0]), closet.Item(pair[1]))
	}
	c, err := b.Build()
	if err != nil {
		glog.Errorf("closetctl: build failed: %v", err)
		return nil, err
	}
	return c, nil
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the families and items recognized by a closet definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCloset()
			if err != nil {
				return err
			}
			fmt.Printf("build id: %s\n", c.BuildID())
			fmt.Printf("representation: %v\n", c.Representation())
			for _, fam := range c.Families() {
				fmt.Printf("  %s: %v\n", fam, c.ItemsInFamily(fam))
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print node/leaf/depth/outfit counts for a closet definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCloset()
			if err != nil {
				return err
			}
			fmt.Printf("nodes:   %s\n", humanize.Comma(int64(c.NodeCount())))
			fmt.Printf("leaves:  %s\n", humanize.Comma(int64(c.LeafCount())))
			fmt.Printf("depth:   %s\n", humanize.Comma(int64(c.Depth())))
			fmt.Printf("outfits: %s\n", humanize.Comma(int64(c.OutfitCount())))
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	var selections []string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Complete an outfit from a set of selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCloset()
			if err != nil {
				return err
			}
			items := make([]closet.Item, len(selections))
			for i, s := range selections {
				items[i] = closet.Item(s)
			}
			outfit, err := c.CompleteOutfit(items)
			if err != nil {
				return err
			}
			fmt.Println(outfit.Items)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&selections, "select", nil, "item to select (repeatable)")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var selections, exclusions []string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Report every item's status under a set of selections/exclusions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCloset()
			if err != nil {
				return err
			}
			toItems := func(ss []string) []closet.Item {
				out := make([]closet.Item, len(ss))
				for i, s := range ss {
					out[i] = closet.Item(s)
				}
				return out
			}
			statuses, err := c.Summarize(toItems(selections), toItems(exclusions))
			if err != nil {
				return err
			}
			for _, st := range statuses {
				fmt.Printf("%-20s %v\n", st.Item, st.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&selections, "select", nil, "item to select (repeatable)")
	cmd.Flags().StringSliceVar(&exclusions, "exclude", nil, "item to exclude (repeatable)")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Print the ZDD s-expression encoding of a closet definition's root",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCloset()
			if err != nil {
				return err
			}
			if c.Representation() != closet.RepresentationZDD {
				return fmt.Errorf("encode requires --representation=zdd")
			}
			fmt.Println(closet.FormatSExpr(c.Arena(), c.Root()))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <s-expression>",
		Short: "Parse a ZDD s-expression and print its node id and the arena size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := closet.NewNodeArena()
			node, err := closet.ParseSExpr(a, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("node id: %d, arena size: %s\n", node, humanize.Comma(int64(a.Size())))
			return nil
		},
	}
}
