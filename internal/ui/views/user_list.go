package views

import "github.com/pterm/pterm"

type UserListView struct{}

func NewUserListView() *UserListView {
	return &UserListView{}
}

func (v *UserListView) Render(users []string, current string) error {
	if len(users) == 0 {
		pterm.Warning.Println("No users registered yet, run 'tally user register'")
		return nil
	}

	tableData := pterm.TableData{{"User", ""}}
	for _, name := range users {
		marker := ""
		if name == current {
			name = pterm.Green(name)
			marker = pterm.Green("(default)")
		}
		tableData = append(tableData, []string{name, marker})
	}

	pterm.DefaultSection.Printf("User List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d users\n", len(users))

	return nil
}
