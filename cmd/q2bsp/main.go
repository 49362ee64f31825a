// Command q2bsp inspects and edits Quake II IBSP map files.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lennart-g/bsp-hacking/bsp"
	"github.com/spf13/cobra"
)

var strictMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "q2bsp",
		Short: "Inspect and edit Quake II IBSP map files",
	}
	rootCmd.PersistentFlags().BoolVar(&strictMode, "strict", false, "reject unknown magic/version instead of warning")

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(entitiesCmd())
	rootCmd.AddCommand(visCmd())
	rootCmd.AddCommand(setTextureCmd())
	rootCmd.AddCommand(setBrushFlagCmd())
	rootCmd.AddCommand(insertLeafFacesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadModel(path string) (*bsp.BspModel, error) {
	m, err := bsp.Load(path, bsp.LoadOptions{Strict: strictMode})
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		log.Printf("Warning: %s", w)
	}
	return m, nil
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.bsp>",
		Short: "Print lump record counts and map flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("version: %d\n", m.Header.Version)
			fmt.Printf("vised: %t  lit: %t\n", m.IsVised(), m.IsLit())
			fmt.Printf("planes: %d\n", len(m.Planes))
			fmt.Printf("vertices: %d\n", len(m.Vertices))
			fmt.Printf("nodes: %d\n", len(m.Nodes))
			fmt.Printf("texinfo: %d\n", len(m.TexInfos))
			fmt.Printf("faces: %d\n", len(m.Faces))
			fmt.Printf("leaves: %d\n", len(m.Leaves))
			fmt.Printf("leaffaces: %d\n", len(m.LeafFaces))
			fmt.Printf("edges: %d\n", len(m.Edges))
			fmt.Printf("faceedges: %d\n", len(m.FaceEdges))
			fmt.Printf("models: %d\n", len(m.Models))
			fmt.Printf("brushes: %d\n", len(m.Brushes))
			fmt.Printf("clusters: %d\n", len(m.Clusters))
			fmt.Printf("entities: %d (+worldspawn)\n", len(m.Entities))
			return nil
		},
	}
}

func entitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities <file.bsp>",
		Short: "Dump the entity lump as key/value blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			printEntity(m.Worldspawn)
			for _, e := range m.Entities {
				printEntity(e)
			}
			return nil
		},
	}
}

func printEntity(e bsp.Entity) {
	fmt.Println("{")
	for _, kv := range e.Pairs {
		fmt.Printf("  %q %q\n", kv.Key, kv.Value)
	}
	fmt.Println("}")
}

func visCmd() *cobra.Command {
	var cluster int
	cmd := &cobra.Command{
		Use:   "vis <file.bsp>",
		Short: "Print the decompressed PVS/PHS bit vector for a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			if cluster < 0 || cluster >= len(m.Clusters) {
				return fmt.Errorf("cluster %d out of range (have %d)", cluster, len(m.Clusters))
			}
			c := m.Clusters[cluster]
			fmt.Printf("pvs: %x\n", c.PVS())
			fmt.Printf("phs: %x\n", c.PHS())
			return nil
		},
	}
	cmd.Flags().IntVar(&cluster, "cluster", 0, "cluster index to print")
	return cmd
}

func setTextureCmd() *cobra.Command {
	var index int
	var name string
	var suffix string
	cmd := &cobra.Command{
		Use:   "set-texture <file.bsp>",
		Short: "Rename the texture referenced by a TexInfo record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			if index < 0 || index >= len(m.TexInfos) {
				return fmt.Errorf("texinfo %d out of range (have %d)", index, len(m.TexInfos))
			}
			if err := m.TexInfos[index].SetTextureName(name); err != nil {
				return err
			}
			return m.SaveMap(args[0], suffix)
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "texinfo record index")
	cmd.Flags().StringVar(&name, "name", "", "new texture name")
	cmd.Flags().StringVar(&suffix, "suffix", "_edit", "suffix inserted before the output file's extension")
	return cmd
}

func setBrushFlagCmd() *cobra.Command {
	var index int
	var flag string
	var clear bool
	var suffix string
	cmd := &cobra.Command{
		Use:   "set-brush-flag <file.bsp>",
		Short: "Set or clear a named content flag on a brush",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			if index < 0 || index >= len(m.Brushes) {
				return fmt.Errorf("brush %d out of range (have %d)", index, len(m.Brushes))
			}
			if err := setNamedContentFlag(&m.Brushes[index].Contents, flag, !clear); err != nil {
				return err
			}
			return m.SaveMap(args[0], suffix)
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "brush record index")
	cmd.Flags().StringVar(&flag, "flag", "", "content flag name, e.g. water, detail, ladder")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the flag instead of setting it")
	cmd.Flags().StringVar(&suffix, "suffix", "_edit", "suffix inserted before the output file's extension")
	return cmd
}

func setNamedContentFlag(c *bsp.ContentFlags, name string, on bool) error {
	switch name {
	case "solid":
		c.Solid = on
	case "window":
		c.Window = on
	case "aux":
		c.Aux = on
	case "lava":
		c.Lava = on
	case "slime":
		c.Slime = on
	case "water":
		c.Water = on
	case "mist":
		c.Mist = on
	case "areaportal":
		c.AreaPortal = on
	case "playerclip":
		c.PlayerClip = on
	case "monsterclip":
		c.MonsterClip = on
	case "current0":
		c.Current0 = on
	case "current90":
		c.Current90 = on
	case "current180":
		c.Current180 = on
	case "current270":
		c.Current270 = on
	case "currentup":
		c.CurrentUp = on
	case "currentdown":
		c.CurrentDown = on
	case "origin":
		c.Origin = on
	case "monster":
		c.Monster = on
	case "deadmonster":
		c.DeadMonster = on
	case "detail":
		c.Detail = on
	case "translucent":
		c.Translucent = on
	case "ladder":
		c.Ladder = on
	default:
		return fmt.Errorf("unknown content flag %q", name)
	}
	return nil
}

func insertLeafFacesCmd() *cobra.Command {
	var index int
	var facesArg string
	var suffix string
	cmd := &cobra.Command{
		Use:   "insert-leaf-faces <file.bsp>",
		Short: "Splice face-table entries into the leaf-face table at an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}
			entries, err := parseLeafFaceList(facesArg)
			if err != nil {
				return err
			}
			if err := m.InsertLeafFaces(entries, index); err != nil {
				return err
			}
			return m.SaveMap(args[0], suffix)
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "leaf-face table insertion point")
	cmd.Flags().StringVar(&facesArg, "faces", "", "comma-separated face-table values to insert")
	cmd.Flags().StringVar(&suffix, "suffix", "_edit", "suffix inserted before the output file's extension")
	return cmd
}

func parseLeafFaceList(s string) ([]bsp.LeafFaceEntry, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]bsp.LeafFaceEntry, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid face index %q: %w", p, err)
		}
		out = append(out, bsp.LeafFaceEntry(n))
	}
	return out, nil
}
