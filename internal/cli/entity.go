package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/battlekeep/battlekeep/internal/model"
)

func newEntityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Entity management commands",
	}

	cmd.AddCommand(newEntityGetCmd())
	cmd.AddCommand(newEntityListCmd())
	cmd.AddCommand(newEntitySaveCmd())
	cmd.AddCommand(newEntityDeleteCmd())
	cmd.AddCommand(newEntityImportCmd())

	return cmd
}

// collectionFlag registers the --collection flag and returns a parser for it
func collectionFlag(cmd *cobra.Command) func() (model.Collection, error) {
	var name string
	cmd.Flags().StringVarP(&name, "collection", "c", "", "Entity collection: statblocks, spells, encounters, persistentcharacters, playercharacters")
	_ = cmd.MarkFlagRequired("collection")
	return func() (model.Collection, error) {
		return model.ParseCollection(name)
	}
}

func newEntityGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <user-id> <entity-id>",
		Short: "Fetch one entity, decoded with its collection defaults",
		Args:  cobra.ExactArgs(2),
	}
	collection := collectionFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		coll, err := collection()
		if err != nil {
			return err
		}

		entity, err := app.AccountService.GetEntity(cmd.Context(), coll, args[0], args[1])
		if err != nil {
			out.PrintError(err)
			return err
		}
		out.Print(entity)
		return nil
	}
	return cmd
}

func newEntityListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List the entity ids stored in one collection",
		Args:  cobra.ExactArgs(1),
	}
	collection := collectionFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		coll, err := collection()
		if err != nil {
			return err
		}

		entities, err := app.Storage.GetCollection(cmd.Context(), args[0], coll)
		if err != nil {
			out.PrintError(err)
			return err
		}

		ids := make([]string, 0, len(entities))
		for id := range entities {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out.Print(ids)
		return nil
	}
	return cmd
}

func newEntitySaveCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save <user-id>",
		Short: "Save one entity from a JSON file",
		Args:  cobra.ExactArgs(1),
	}
	collection := collectionFlag(cmd)
	cmd.Flags().StringVar(&file, "file", "", "Path to the entity JSON file (required)")
	_ = cmd.MarkFlagRequired("file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		coll, err := collection()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		modified, err := app.AccountService.SaveEntity(cmd.Context(), coll, args[0], data)
		if err != nil {
			out.PrintError(err)
			return err
		}
		out.PrintMessage(fmt.Sprintf("modified %d account(s)", modified))
		return nil
	}
	return cmd
}

func newEntityDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <user-id> <entity-id>",
		Short: "Delete one entity (succeeds even if it does not exist)",
		Args:  cobra.ExactArgs(2),
	}
	collection := collectionFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		coll, err := collection()
		if err != nil {
			return err
		}

		removed, err := app.AccountService.DeleteEntity(cmd.Context(), coll, args[0], args[1])
		if err != nil {
			out.PrintError(err)
			return err
		}
		out.PrintMessage(fmt.Sprintf("removed %d entities", removed))
		return nil
	}
	return cmd
}

func newEntityImportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import <user-id>",
		Short: "Bulk-save every *.json entity in a directory into one collection",
		Long: `Bulk-save every *.json entity in a directory into one collection.

All files are validated before anything is written; one invalid entity fails
the whole import. The merge rewrites the whole collection, so avoid running
two imports against the same collection at once.`,
		Args: cobra.ExactArgs(1),
	}
	collection := collectionFlag(cmd)
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of entity JSON files (required)")
	_ = cmd.MarkFlagRequired("dir")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		coll, err := collection()
		if err != nil {
			return err
		}

		paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no *.json files in %s", dir)
		}
		sort.Strings(paths)

		entities := make([]model.Entity, 0, len(paths))
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			entities = append(entities, data)
		}

		modified, err := app.AccountService.SaveEntitySet(cmd.Context(), coll, args[0], entities)
		if err != nil {
			out.PrintError(err)
			return err
		}
		out.PrintMessage(fmt.Sprintf("imported %d entities, modified %d account(s)", len(entities), modified))
		return nil
	}
	return cmd
}
