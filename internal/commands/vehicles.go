package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/vaga/internal/models"
	"github.com/balkashynov/vaga/internal/parser"
)

var vehiclesCmd = &cobra.Command{
	Use:     "vehicles",
	Aliases: []string{"v"},
	Short:   "Manage the vehicle registry",
	Run: func(cmd *cobra.Command, args []string) {
		vehiclesListCmd.Run(cmd, args)
	},
}

var vehiclesListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List registered vehicles",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		vehicles, err := a.client.Vehicles(context.Background())
		if err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		if len(vehicles) == 0 {
			fmt.Println("No vehicles registered.")
			return
		}

		fmt.Printf("%-10s %-6s %-20s %-14s %-12s %-12s %-8s %s\n",
			"PLATE", "TYPE", "OWNER", "PHONE", "MODEL", "BRAND", "COLOR", "YEAR")
		fmt.Println(strings.Repeat("-", 92))
		for _, v := range vehicles {
			fmt.Printf("%-10s %-6s %-20s %-14s %-12s %-12s %-8s %d\n",
				v.Plate, v.Category, truncate(v.Owner, 20), v.Phone,
				truncate(v.Model, 12), truncate(v.Brand, 12), truncate(v.Color, 8), v.Year)
		}
	}),
}

var vehiclesAddCmd = &cobra.Command{
	Use:   "add [plate]",
	Short: "Register a vehicle",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		v, err := vehicleFromFlags(a, cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := a.client.CreateVehicle(context.Background(), v); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		fmt.Printf("🚗 Vehicle %s registered\n", v.Plate)
	}),
}

var vehiclesEditCmd = &cobra.Command{
	Use:   "edit [plate]",
	Short: "Edit a registered vehicle (the plate itself is immutable)",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		v, err := vehicleFromFlags(a, cmd, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := a.client.UpdateVehicle(context.Background(), v); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		fmt.Printf("✏️  Vehicle %s updated\n", v.Plate)
	}),
}

var vehiclesRemoveCmd = &cobra.Command{
	Use:     "rm [plate]",
	Aliases: []string{"remove"},
	Short:   "Delete a vehicle from the registry",
	Long: `Delete a vehicle. Stays referencing it keep working and show up as
DELETED on the board; they stop counting toward occupancy.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		plate, err := parser.NormalizePlate(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Printf("Delete vehicle %s? [y/N] ", plate)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return
			}
		}

		if err := a.client.DeleteVehicle(context.Background(), plate); err != nil {
			fmt.Printf("Error: %s\n", friendly(err))
			return
		}
		fmt.Printf("🗑️  Vehicle %s deleted\n", plate)
	}),
}

func vehicleFromFlags(a *app, cmd *cobra.Command, rawPlate string) (models.Vehicle, error) {
	plate, err := parser.NormalizePlate(rawPlate)
	if err != nil {
		return models.Vehicle{}, err
	}

	category, _ := cmd.Flags().GetString("type")
	category = strings.ToUpper(strings.TrimSpace(category))
	if category != string(models.CategoryCar) && category != string(models.CategoryMoto) {
		return models.Vehicle{}, fmt.Errorf("type must be CARRO or MOTO")
	}

	owner, _ := cmd.Flags().GetString("owner")
	phone, _ := cmd.Flags().GetString("phone")
	model, _ := cmd.Flags().GetString("model")
	brand, _ := cmd.Flags().GetString("brand")
	color, _ := cmd.Flags().GetString("color")
	year, _ := cmd.Flags().GetInt("year")

	var userID int64
	if cred := a.gateway.Current(); cred != nil {
		userID = cred.UserID
	}

	return models.Vehicle{
		Plate:       plate,
		Category:    models.VehicleCategory(category),
		Owner:       owner,
		Phone:       phone,
		Model:       model,
		Brand:       brand,
		Color:       color,
		Year:        year,
		OwnerUserID: userID,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func init() {
	for _, cmd := range []*cobra.Command{vehiclesAddCmd, vehiclesEditCmd} {
		cmd.Flags().String("type", "CARRO", "Vehicle type: CARRO or MOTO")
		cmd.Flags().String("owner", "", "Owner name")
		cmd.Flags().String("phone", "", "Owner phone")
		cmd.Flags().String("model", "", "Model")
		cmd.Flags().String("brand", "", "Brand")
		cmd.Flags().String("color", "", "Color")
		cmd.Flags().Int("year", 0, "Year")
	}
	vehiclesRemoveCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	vehiclesCmd.AddCommand(vehiclesListCmd)
	vehiclesCmd.AddCommand(vehiclesAddCmd)
	vehiclesCmd.AddCommand(vehiclesEditCmd)
	vehiclesCmd.AddCommand(vehiclesRemoveCmd)
}
