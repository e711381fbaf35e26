// cmd/client/cmd/query/add.go
package query

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"querytrack/cmd/client/cmd/types"
	"querytrack/cmd/client/cmd/ui"
	"querytrack/internal/domain/query"
)

var (
	addTitle       string
	addDescription string
	addType        string
	addStatus      string
	addPriority    string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Создать новый запрос",
	Long: `Создает запрос. Без --title заголовок запрашивается интерактивно.

Примеры:
  querytrack query add --title "Не работает вход" --type Bug --priority high
  querytrack query add`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		title := addTitle
		if title == "" {
			if title, err = ui.Prompt("Заголовок: "); err != nil {
				return err
			}
			if addDescription == "" {
				if addDescription, err = ui.Prompt("Описание (необязательно): "); err != nil {
					return err
				}
			}
		}

		typeID, err := resolveType(cmd.Context(), app, addType)
		if err != nil {
			return err
		}

		q, err := app.AddQuery(cmd.Context(), query.CreateRequest{
			Title:       title,
			Description: optional(strings.TrimSpace(addDescription)),
			Status:      query.Status(addStatus),
			Priority:    query.Priority(addPriority),
			TypeID:      typeID,
		})
		if err != nil {
			return fmt.Errorf("ошибка создания запроса: %w", err)
		}

		fmt.Println(ui.Success("✅ Запрос создан"))
		fmt.Printf("ID: %s\n", q.ID)
		return nil
	},
}

var (
	editTitle       string
	editDescription string
	editType        string
	editPriority    string
	editNoType      bool
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить запрос",
	Long: `Изменяет указанные поля запроса. ID можно сократить до однозначного префикса.

Примеры:
  querytrack query edit 3f2a --title "Новый заголовок"
  querytrack query edit 3f2a --type Feature --priority urgent
  querytrack query edit 3f2a --no-type`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		id, err := resolveID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		var req query.UpdateRequest
		flags := cmd.Flags()
		if flags.Changed("title") {
			req.Title = &editTitle
		}
		if flags.Changed("description") {
			req.Description = &editDescription
		}
		if flags.Changed("priority") {
			p := query.Priority(editPriority)
			req.Priority = &p
		}
		switch {
		case editNoType:
			empty := ""
			req.TypeID = &empty
		case flags.Changed("type"):
			if req.TypeID, err = resolveType(cmd.Context(), app, editType); err != nil {
				return err
			}
		}

		if _, err := app.EditQuery(cmd.Context(), id, req); err != nil {
			return fmt.Errorf("ошибка изменения запроса: %w", err)
		}

		fmt.Println(ui.Success("✓ Запрос обновлен"))
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addTitle, "title", "t", "", "заголовок запроса")
	AddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "описание")
	AddCmd.Flags().StringVar(&addType, "type", "", "имя типа")
	AddCmd.Flags().StringVarP(&addStatus, "status", "s", string(query.StatusPending), "статус")
	AddCmd.Flags().StringVarP(&addPriority, "priority", "p", string(query.PriorityMedium), "приоритет (low, medium, high, urgent)")

	EditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "новый заголовок")
	EditCmd.Flags().StringVarP(&editDescription, "description", "d", "", "новое описание")
	EditCmd.Flags().StringVar(&editType, "type", "", "имя типа")
	EditCmd.Flags().BoolVar(&editNoType, "no-type", false, "убрать тип")
	EditCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "новый приоритет")
	EditCmd.MarkFlagsMutuallyExclusive("type", "no-type")
}
