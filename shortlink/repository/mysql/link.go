package mysql

import (
	"context"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	ormKit "github.com/superj80820/shortlink/kit/orm"
)

type linkRepository struct {
	orm       *ormKit.DB
	tableName string
}

func CreateLinkRepo(orm *ormKit.DB) domain.LinkRepo {
	return &linkRepository{
		orm:       orm,
		tableName: "links",
	}
}

func (l *linkRepository) InsertLink(ctx context.Context, link *domain.Link) error {
	// INSERT INTO links (id,slug,url,clicks,is_active,owner_id,expires_at,created_at) VALUES (...);
	builder := sq.
		Insert(l.tableName).
		Columns("id", "slug", "url", "clicks", "is_active", "owner_id", "expires_at", "created_at").
		Values(link.ID, link.Slug, link.URL, link.Clicks, link.IsActive, link.OwnerID, link.ExpiresAt, link.CreatedAt)
	sql, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "to sql failed")
	}
	execResult := l.orm.Table(l.tableName).Exec(sql, args...)
	err = execResult.Error
	if dbErr, ok := ormKit.ConvertDBLevelErr(err); ok && errors.Is(dbErr, ormKit.ErrDuplicatedKey) {
		return errors.Wrap(domain.ErrDuplicateSlug, "slug already allocated, slug: "+link.Slug)
	} else if err != nil {
		return errors.Wrap(err, "exec failed")
	}
	if execResult.RowsAffected != 1 {
		return errors.New("insert rows affected count error, count: " + strconv.FormatInt(execResult.RowsAffected, 10))
	}
	return nil
}

func (l *linkRepository) GetLinkBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	// SELECT * FROM links WHERE slug = 'abc12345' LIMIT 1;
	builder := sq.
		Select("*").
		From(l.tableName).
		Where("slug = ?", slug).
		Limit(1)
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "to sql failed")
	}
	var link domain.Link
	queryResult := l.orm.Table(l.tableName).Raw(sql, args...).Scan(&link)
	if err := queryResult.Error; err != nil {
		return nil, errors.Wrap(err, "query failed")
	}

	if queryResult.RowsAffected < 1 {
		return nil, errors.Wrap(domain.ErrLinkNotFound, "not found data, slug: "+slug)
	}

	return &link, nil
}

func (l *linkRepository) IncrementClicks(ctx context.Context, slug string) error {
	// UPDATE links SET clicks = clicks + 1 WHERE slug = 'abc12345';
	builder := sq.
		Update(l.tableName).
		Set("clicks", sq.Expr("clicks + 1")).
		Where("slug = ?", slug)
	sql, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "to sql failed")
	}
	execResult := l.orm.Table(l.tableName).Exec(sql, args...)
	if err := execResult.Error; err != nil {
		return errors.Wrap(err, "exec failed")
	}
	if execResult.RowsAffected < 1 {
		return errors.Wrap(domain.ErrLinkNotFound, "not found data, slug: "+slug)
	}
	return nil
}

func (l *linkRepository) SetInactive(ctx context.Context, slug string) error {
	// UPDATE links SET is_active = FALSE WHERE slug = 'abc12345';
	builder := sq.
		Update(l.tableName).
		Set("is_active", false).
		Where("slug = ?", slug)
	sql, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "to sql failed")
	}
	// affected rows may be 0 when the link is already inactive
	if err := l.orm.Table(l.tableName).Exec(sql, args...).Error; err != nil {
		return errors.Wrap(err, "exec failed")
	}
	return nil
}

var linkSortByColumns = map[domain.LinkSortByEnum]string{
	domain.ClicksLinkSortByEnum:    "clicks",
	domain.CreatedAtLinkSortByEnum: "created_at",
	domain.ExpiresAtLinkSortByEnum: "expires_at",
}

func (l *linkRepository) GetLinks(ctx context.Context, limit int, sortBy domain.LinkSortByEnum, order domain.SortOrderByEnum) ([]*domain.Link, error) {
	column, ok := linkSortByColumns[sortBy]
	if !ok {
		return nil, errors.New("unknown sort by enum: " + strconv.Itoa(int(sortBy)))
	}
	direction := "ASC"
	if order == domain.DESCSortOrderByEnum {
		direction = "DESC"
	}

	// SELECT * FROM links ORDER BY created_at DESC LIMIT 50;
	builder := sq.
		Select("*").
		From(l.tableName).
		OrderBy(column + " " + direction).
		Limit(uint64(limit))
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "to sql failed")
	}
	var links []*domain.Link
	queryResult := l.orm.Table(l.tableName).Raw(sql, args...).Scan(&links)
	if err := queryResult.Error; err != nil {
		return nil, errors.Wrap(err, "query failed")
	}
	return links, nil
}

func (l *linkRepository) CountLinks(ctx context.Context) (int64, error) {
	// SELECT COUNT(*) FROM links;
	builder := sq.
		Select("COUNT(*)").
		From(l.tableName)
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "to sql failed")
	}
	var count int64
	if err := l.orm.Table(l.tableName).Raw(sql, args...).Scan(&count).Error; err != nil {
		return 0, errors.Wrap(err, "query failed")
	}
	return count, nil
}
