package domain

// User representa a entidade do usuário no sistema.
// Nenhuma regra de negócio atual depende dele; existe como alvo dos empréstimos.
type User struct {
	ID           int64    `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole `json:"role" db:"role"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin  UserRole = "Admin"
	RoleLeitor UserRole = "Leitor"
)

