package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/mapper"
	"mobiadvisor-be/internal/model"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/store"

	"gorm.io/gorm"
)

const defaultFilterLimit = 50

var ErrUnsafePredicate = errors.New("predicate must be a single SELECT statement")

// Keywords that must never appear in a generated predicate.
var forbiddenPredicateKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "truncate", "grant", "revoke",
}

type PhoneRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PhoneMapper
}

func NewPhoneRepository(db *gorm.DB) contract.PhoneRepository {
	return &PhoneRepositoryImpl{
		db:     db,
		mapper: mapper.NewPhoneMapper(),
	}
}

func (r *PhoneRepositoryImpl) toEntities(models []*model.Phone) []*entity.Phone {
	entities := make([]*entity.Phone, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities
}

func (r *PhoneRepositoryImpl) GetById(ctx context.Context, id int) (*entity.Phone, error) {
	var m model.Phone
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PhoneRepositoryImpl) FindByIds(ctx context.Context, ids []int) ([]*entity.Phone, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []*model.Phone
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) applyFilters(db *gorm.DB, f *store.Filters) *gorm.DB {
	if f == nil {
		return db
	}
	if f.Company != "" {
		db = db.Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(f.Company)+"%")
	}
	if f.MinPrice != nil {
		db = db.Where("price_inr >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price_inr <= ?", *f.MaxPrice)
	}
	if f.MinRam != nil {
		db = db.Where("ram_gb >= ?", *f.MinRam)
	}
	if f.MinBattery != nil {
		db = db.Where("battery_mah >= ?", *f.MinBattery)
	}
	if f.MinCamera != nil {
		db = db.Where("back_camera_mp >= ?", *f.MinCamera)
	}
	if f.MinStorage != nil {
		db = db.Where("memory_gb >= ?", *f.MinStorage)
	}
	return db
}

func (r *PhoneRepositoryImpl) QueryByFilters(ctx context.Context, f *store.Filters, orderColumns []string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = defaultFilterLimit
	}

	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Phone{}), f)

	if len(orderColumns) == 0 {
		orderColumns = []string{"user_rating DESC", "price_inr ASC"}
	}
	for _, col := range orderColumns {
		query = query.Order(col)
	}

	var models []*model.Phone
	if err := query.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

// QueryByPredicate executes a generated SELECT. The statement is validated
// before it touches the database: single statement, SELECT-only, no DML/DDL.
func (r *PhoneRepositoryImpl) QueryByPredicate(ctx context.Context, predicate string) ([]*entity.Phone, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(predicate), ";"))
	if err := validatePredicate(cleaned); err != nil {
		return nil, err
	}

	var models []*model.Phone
	if err := r.db.WithContext(ctx).Raw(cleaned).Scan(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func validatePredicate(predicate string) error {
	lowered := strings.ToLower(predicate)
	if !strings.HasPrefix(lowered, "select") {
		return ErrUnsafePredicate
	}
	if strings.Contains(lowered, ";") {
		return ErrUnsafePredicate
	}
	for _, kw := range forbiddenPredicateKeywords {
		if strings.Contains(lowered, kw+" ") || strings.HasSuffix(lowered, kw) {
			return ErrUnsafePredicate
		}
	}
	return nil
}

func (r *PhoneRepositoryImpl) SearchByModelSubstring(ctx context.Context, term string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.Phone
	err := r.db.WithContext(ctx).
		Where("LOWER(model_name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("user_rating DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) SearchByBrandModel(ctx context.Context, brand, term string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.Phone
	err := r.db.WithContext(ctx).
		Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(brand)+"%").
		Where("LOWER(model_name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("user_rating DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&model.Phone{})
	var clauses []string
	var args []interface{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) < 3 {
			continue
		}
		pattern := "%" + kw + "%"
		clauses = append(clauses, "(LOWER(model_name) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(processor) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if len(clauses) == 0 {
		return nil, nil
	}
	query = query.Where(strings.Join(clauses, " OR "), args...)

	var models []*model.Phone
	if err := query.Order("user_rating DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) FindTopByBrand(ctx context.Context, brand string, limit int) ([]*entity.Phone, error) {
	if limit <= 0 {
		limit = 3
	}
	var models []*model.Phone
	err := r.db.WithContext(ctx).
		Where("LOWER(company_name) LIKE ?", "%"+strings.ToLower(brand)+"%").
		Order("user_rating DESC").
		Order("price_inr ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) ListBrands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).
		Model(&model.Phone{}).
		Distinct("company_name").
		Order("company_name ASC").
		Pluck("company_name", &brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *PhoneRepositoryImpl) ListModels(ctx context.Context, limit int) ([]*entity.Phone, error) {
	query := r.db.WithContext(ctx).Select("id", "company_name", "model_name", "user_rating")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []*model.Phone
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PhoneRepositoryImpl) Aggregates(ctx context.Context) (*contract.PhoneAggregates, error) {
	type row struct {
		MinPrice   int
		MaxPrice   int
		MinRam     float64
		MaxRam     float64
		MinBattery int
		MaxBattery int
		MinCamera  float64
		MaxCamera  float64
	}
	var res row
	err := r.db.WithContext(ctx).
		Model(&model.Phone{}).
		Select("MIN(price_inr) as min_price, MAX(price_inr) as max_price, " +
			"MIN(ram_gb) as min_ram, MAX(ram_gb) as max_ram, " +
			"MIN(battery_mah) as min_battery, MAX(battery_mah) as max_battery, " +
			"MIN(back_camera_mp) as min_camera, MAX(back_camera_mp) as max_camera").
		Scan(&res).Error
	if err != nil {
		return nil, err
	}

	brands, err := r.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	return &contract.PhoneAggregates{
		MinPrice:   res.MinPrice,
		MaxPrice:   res.MaxPrice,
		MinRam:     res.MinRam,
		MaxRam:     res.MaxRam,
		MinBattery: res.MinBattery,
		MaxBattery: res.MaxBattery,
		MinCamera:  res.MinCamera,
		MaxCamera:  res.MaxCamera,
		Brands:     brands,
	}, nil
}

func (r *PhoneRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Phone{}).Count(&count).Error
	return count, err
}

func (r *PhoneRepositoryImpl) CreateBulk(ctx context.Context, phones []*entity.Phone) error {
	if len(phones) == 0 {
		return nil
	}
	models := make([]*model.Phone, len(phones))
	for i, p := range phones {
		models[i] = r.mapper.ToModel(p)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return fmt.Errorf("bulk insert phones: %w", err)
	}
	for i, m := range models {
		*phones[i] = *r.mapper.ToEntity(m)
	}
	return nil
}
