package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osokina-md/go-market-client/internal/service"
)

var (
	productsPage    int
	productsSize    int
	productsOrderBy string
	productsKeyword string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Показать страницу каталога",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := runContext()
		defer cancel()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		out, err := a.Service.Products(ctx, service.ListProductsParams{
			Page:     productsPage,
			PageSize: productsSize,
			OrderBy:  productsOrderBy,
			Keyword:  productsKeyword,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Total: %d\n", out.TotalCount)
		for _, p := range out.List {
			mark := " "
			if p.IsFavorite {
				mark = "*"
			}
			fmt.Printf("%s #%d\t%s\t%d\t♥%d\n", mark, p.ID, p.Name, p.Price, p.FavoriteCount)
		}
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Показать карточку товара",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
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

		p, err := a.Service.ProductByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("#%d %s\n", p.ID, p.Name)
		if p.Description != "" {
			fmt.Println(p.Description)
		}
		fmt.Printf("Price:     %d\n", p.Price)
		fmt.Printf("Favorites: %d (mine: %v)\n", p.FavoriteCount, p.IsFavorite)
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Переключить лайк товара",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
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

		p, err := a.Service.ProductByID(ctx, id)
		if err != nil {
			return err
		}

		if err := a.Service.ToggleFavorite(ctx, p); err != nil {
			return err
		}

		fmt.Printf("#%d favorite=%v count=%d\n", p.ID, p.IsFavorite, p.FavoriteCount)
		return nil
	},
}

func init() {
	productsCmd.Flags().IntVar(&productsPage, "page", 1, "page number")
	productsCmd.Flags().IntVar(&productsSize, "page-size", 10, "items per page")
	productsCmd.Flags().StringVar(&productsOrderBy, "order-by", "recent", "recent | favorite")
	productsCmd.Flags().StringVar(&productsKeyword, "keyword", "", "search keyword")

	rootCmd.AddCommand(productsCmd, productCmd, favoriteCmd)
}
