package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/printshop/printshop-api/models"
	"github.com/spf13/cobra"
)

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func pageFooter(w io.Writer, page, totalPages, total int) {
	fmt.Fprintf(w, "\npage %d/%d, %d total\n", page, totalPages, total)
}

// Orders

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse customer orders",
	}

	var params models.ListOrdersParams
	var status string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Status = models.OrderStatus(status)
			result, err := a.client.GetOrders(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, result, func(w io.Writer) {
				row(w, "ID", "CODE", "CUSTOMER", "STATUS", "TOTAL", "DEPOSIT", "REMAINING", "DELIVERY")
				for _, o := range result.Items {
					customer := "-"
					if o.Customer != nil {
						customer = o.Customer.Name
					}
					row(w, o.ID, o.Code, customer, o.Status, money(o.TotalAmount), money(o.DepositAmount), money(o.RemainingAmount()), date(o.DeliveryDate))
				}
				pageFooter(w, result.Page, result.TotalPages, result.Total)
			})
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().UintVar(&params.CustomerID, "customer", 0, "Filter by customer id")
	listCmd.Flags().StringVar(&params.FromDate, "from", "", "Created on or after (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&params.ToDate, "to", "", "Created on or before (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&params.Search, "search", "", "Match order code, customer or recipient")
	listCmd.Flags().IntVar(&params.PageNumber, "page", 1, "Page number")
	listCmd.Flags().IntVar(&params.PageSize, "page-size", models.DefaultPageSize, "Page size")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			order, err := a.client.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.render(cmd, order, func(w io.Writer) {
				customer := "-"
				if order.Customer != nil {
					customer = order.Customer.Name
				}
				row(w, "Order:", order.Code)
				row(w, "Customer:", customer)
				row(w, "Status:", order.Status)
				row(w, "Total:", money(order.TotalAmount))
				row(w, "Deposit:", money(order.DepositAmount))
				row(w, "Remaining:", money(order.RemainingAmount()))
				row(w, "Delivery:", date(order.DeliveryDate))
				row(w, "Recipient:", str(order.RecipientName))
				fmt.Fprintln(w)
				row(w, "LINE", "DESIGN", "QTY", "AVAILABLE", "UNIT PRICE", "TOTAL")
				for _, d := range order.OrderDetails {
					design := "-"
					if d.Design != nil {
						design = d.Design.Code
					}
					row(w, d.ID, design, d.Quantity, d.AvailableQuantity, money(d.UnitPrice), money(d.TotalPrice))
				}
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd)
	return cmd
}

// Design types

func newDesignTypesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "design-types",
		Aliases: []string{"dt"},
		Short:   "Inspect the design type catalog",
	}

	var activeOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List design types by sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				types []models.DesignType
				err   error
			)
			if activeOnly {
				types, err = a.client.GetActiveDesignTypes(cmd.Context())
			} else {
				types, err = a.client.GetDesignTypes(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.render(cmd, types, func(w io.Writer) {
				row(w, "ID", "CODE", "NAME", "FORMAT", "ORDER", "ACTIVE")
				for _, dt := range types {
					format := dt.CodeFormat
					if format == "" {
						format = "-"
					}
					row(w, dt.ID, dt.Code, dt.Name, format, dt.SortOrder, dt.IsActive)
				}
			})
		},
	}
	listCmd.Flags().BoolVar(&activeOnly, "active", false, "Only active design types")

	var (
		req     models.GenerateDesignCodeRequest
		dateArg string
	)
	generateCmd := &cobra.Command{
		Use:   "generate-code",
		Short: "Generate the code for a new design",
		Example: `  printshopctl design-types generate-code --type 1 --customer ABC --number 7
  printshopctl dt generate-code --type 2 --customer XYZ --number 12 --date 2024-03-05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dateArg != "" {
				d, err := time.Parse("2006-01-02", dateArg)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", dateArg, err)
				}
				req.Date = &d
			}
			code, err := a.client.GenerateDesignCode(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd, models.GenerateDesignCodeResponse{Code: code}, func(w io.Writer) {
				fmt.Fprintln(w, code)
			})
		},
	}
	generateCmd.Flags().StringVar(&req.DesignTypeID, "type", "", "Design type id")
	generateCmd.Flags().StringVar(&req.CustomerCode, "customer", "", "Customer code")
	generateCmd.Flags().IntVar(&req.DesignNumber, "number", 1, "Design number")
	generateCmd.Flags().StringVar(&dateArg, "date", "", "Date to embed (YYYY-MM-DD), defaults to today")
	_ = generateCmd.MarkFlagRequired("type")
	_ = generateCmd.MarkFlagRequired("customer")

	cmd.AddCommand(listCmd, generateCmd)
	return cmd
}

// Proofing

func newProofingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proofing",
		Short: "Browse proofing orders",
	}

	var (
		params models.ListProofingOrdersParams
		status string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List proofing orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Status = models.ProofingStatus(status)
			result, err := a.client.GetProofingOrders(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, result, func(w io.Writer) {
				row(w, "ID", "CODE", "MATERIAL", "PAPER", "SHEETS", "DESIGNS", "STATUS")
				for _, po := range result.Items {
					material, paper := "-", "-"
					if po.MaterialType != nil {
						material = po.MaterialType.Name
					}
					if po.PaperSize != nil {
						paper = po.PaperSize.Name
					}
					row(w, po.ID, po.Code, material, paper, po.TotalQuantity, len(po.ProofingOrderDesigns), po.Status)
				}
				pageFooter(w, result.Page, result.TotalPages, result.Total)
			})
		},
	}
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().UintVar(&params.MaterialTypeID, "material", 0, "Filter by material type id")
	listCmd.Flags().StringVar(&params.Search, "search", "", "Match proofing order code")
	listCmd.Flags().IntVar(&params.PageNumber, "page", 1, "Page number")
	listCmd.Flags().IntVar(&params.PageSize, "page-size", models.DefaultPageSize, "Page size")

	cmd.AddCommand(listCmd)
	return cmd
}

// Dashboard

func newDashboardCmd(a *app) *cobra.Command {
	var employeeID uint
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the manager dashboard, or one employee's with --employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if employeeID != 0 {
				dash, err := a.client.GetEmployeeDashboard(cmd.Context(), employeeID)
				if err != nil {
					return err
				}
				return a.render(cmd, dash, func(w io.Writer) {
					row(w, "Employee:", dash.UserID)
					row(w, "Designs pending:", dash.Designs.Pending)
					row(w, "Designs in progress:", dash.Designs.InProgress)
					row(w, "Designs completed:", dash.Designs.Completed)
					row(w, "Active productions:", dash.ActiveProductions)
					row(w, "Completed productions:", dash.CompletedProductions)
				})
			}

			dash, err := a.client.GetManagerDashboard(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, dash, func(w io.Writer) {
				row(w, "Orders:", dash.Orders.TotalOrders)
				row(w, "Revenue:", money(dash.Orders.Revenue))
				row(w, "Deposits:", money(dash.Orders.Deposits))
				row(w, "Outstanding:", money(dash.Orders.Outstanding))
				row(w, "Production completion:", fmt.Sprintf("%.0f%%", dash.ProductionCompletionRate))

				statuses := make([]string, 0, len(dash.ProofingByStatus))
				for s := range dash.ProofingByStatus {
					statuses = append(statuses, string(s))
				}
				sort.Strings(statuses)
				fmt.Fprintln(w)
				row(w, "PROOFING STATUS", "COUNT")
				for _, s := range statuses {
					row(w, s, dash.ProofingByStatus[models.ProofingStatus(s)])
				}

				fmt.Fprintln(w)
				row(w, "DESIGNER", "PENDING", "IN PROGRESS", "COMPLETED")
				for _, d := range dash.DesignerWorkload {
					row(w, d.DesignerID, d.Pending, d.InProgress, d.Completed)
				}
			})
		},
	}
	cmd.Flags().UintVar(&employeeID, "employee", 0, "Employee (user) id")
	return cmd
}
