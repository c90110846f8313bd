package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/osokina-md/go-market-client/internal/models"
)

var (
	commentsLimit  int
	commentsCursor string
)

var commentsCmd = &cobra.Command{
	Use:   "comments <product-id>",
	Short: "Показать комментарии товара",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		out, err := a.Service.Comments(ctx, productID, commentsLimit, commentsCursor)
		if err != nil {
			return err
		}

		for _, c := range out.List {
			printComment(c)
		}
		if out.NextCursor != "" {
			fmt.Printf("next cursor: %s\n", out.NextCursor)
		}
		return nil
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "comment-add <product-id> <content>",
	Short: "Добавить комментарий",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var list []models.Comment
		if err := a.Service.AddComment(ctx, productID, &list, args[1]); err != nil {
			return err
		}

		printComment(list[len(list)-1])
		return nil
	},
}

var commentEditCmd = &cobra.Command{
	Use:   "comment-edit <comment-id> <content>",
	Short: "Изменить комментарий",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		list := []models.Comment{{ID: args[0]}}
		if err := a.Service.EditComment(ctx, &list, args[0], args[1]); err != nil {
			return err
		}

		printComment(list[0])
		return nil
	},
}

var commentRmCmd = &cobra.Command{
	Use:   "comment-rm <comment-id>",
	Short: "Удалить комментарий",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		list := []models.Comment{{ID: args[0]}}
		if err := a.Service.DeleteComment(ctx, &list, args[0]); err != nil {
			return err
		}

		fmt.Println("Deleted", args[0])
		return nil
	},
}

func printComment(c models.Comment) {
	ts := time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339)
	fmt.Printf("[%s] %s (%s): %s\n", c.ID, c.Writer.Nickname, ts, c.Content)
}

func init() {
	commentsCmd.Flags().IntVar(&commentsLimit, "limit", 10, "comments per page")
	commentsCmd.Flags().StringVar(&commentsCursor, "cursor", "", "pagination cursor")

	rootCmd.AddCommand(commentsCmd, commentAddCmd, commentEditCmd, commentRmCmd)
}
