// backend-go/internal/service/store_service.go
package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
)

// CreateShopInput registers a new store site together with its first user.
type CreateShopInput struct {
	StoreName  string `json:"StoreName"`
	UserName   string `json:"userName"`
	Password   string `json:"Password"`
	PortNo     string `json:"PortNo"`
	HostIP     string `json:"HostIP"`
	Email      string `json:"Email"`
	Roles      string `json:"Roles"`
	Permission string `json:"Permission"`
}

// StoreService manages registered sites.
type StoreService struct {
	stores     repository.StoreRepository
	bcryptCost int
}

func NewStoreService(stores repository.StoreRepository, bcryptCost int) *StoreService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &StoreService{stores: stores, bcryptCost: bcryptCost}
}

// CreateShop creates the store record, its login account, and the linking
// row in one local transaction. The store row keeps the raw password (it is
// the credential the registry dials the store database with); the user
// account stores only the bcrypt hash.
func (s *StoreService) CreateShop(ctx context.Context, in *CreateShopInput) (storeID, userID int64, err error) {
	if in.StoreName == "" || in.UserName == "" || in.Password == "" {
		return 0, 0, domain.NewValidationError("StoreName/userName/Password", "missing required field")
	}

	existing, err := s.stores.FindByName(ctx, in.StoreName)
	if err != nil {
		return 0, 0, domain.NewPersistenceError(repository.TargetLocal, "create shop/check name", err)
	}
	if existing != nil {
		return 0, 0, domain.NewValidationError("StoreName", "store already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return 0, 0, err
	}

	store := &domain.Store{
		StoreName: in.StoreName,
		UserName:  in.UserName,
		Password:  in.Password,
		PortNo:    in.PortNo,
		HostIP:    in.HostIP,
	}
	user := &domain.User{
		Username: in.UserName,
		Email:    in.Email,
		Password: string(hash),
		Roles:    in.Roles,
		Permiss:  in.Permission,
	}

	storeID, userID, err = s.stores.CreateWithUser(ctx, store, user)
	if err != nil {
		return 0, 0, domain.NewPersistenceError(repository.TargetLocal, "create shop", err)
	}
	return storeID, userID, nil
}

// List returns all registered stores.
func (s *StoreService) List(ctx context.Context) ([]*domain.Store, error) {
	return s.stores.List(ctx)
}
